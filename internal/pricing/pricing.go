// Package pricing serves illustrative hotel and flight price tables. The
// figures are static samples — no live pricing feed is wired up — and every
// surface that shows them must label them as such.
package pricing

import (
	"fmt"

	"github.com/samber/lo"
)

type HotelPrice struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

type FlightPrice struct {
	Route string `json:"route"`
	Price string `json:"price"`
}

var sampleHotels = []HotelPrice{
	{Name: "Hotel Central", Price: "$150/night"},
	{Name: "City View Inn", Price: "$110/night"},
	{Name: "Luxury Grand", Price: "$260/night"},
}

type flightFare struct {
	origin string
	price  string
}

var sampleFares = []flightFare{
	{origin: "NYC", price: "$520"},
	{origin: "LAX", price: "$610"},
}

// HotelPrices returns the sample hotel table for a city. The city argument
// only exists to mirror a real provider's signature.
func HotelPrices(city string) []HotelPrice {
	_ = city
	return append([]HotelPrice(nil), sampleHotels...)
}

// FlightPrices returns sample fares into city from fixed origins.
func FlightPrices(city string) []FlightPrice {
	return lo.Map(sampleFares, func(f flightFare, _ int) FlightPrice {
		return FlightPrice{
			Route: fmt.Sprintf("%s → %s", f.origin, city),
			Price: f.price,
		}
	})
}
