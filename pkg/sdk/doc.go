// Package sdk is a typed HTTP client for the nearby products API.
//
// Basic usage:
//
//	client := sdk.New("https://nearby.example.com", sdk.WithAPIKey("secret"))
//	products, err := client.Nearby(ctx, sdk.NearbyRequest{Lat: 52.37, Lng: 4.89})
package sdk
