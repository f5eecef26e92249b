package constants

// Имя обменника доменных событий
const (
	EventsExchange = "listings_exchange"
)

// Ключи маршрутизации
const (
	RoutingKeyApartmentCreated = "listings.apartment.created"
)
