package models

// GeoPoint is a GeoJSON point: [longitude, latitude].
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// Address is a structured service address with an optional geocoordinate.
type Address struct {
	Street     string    `bson:"street" json:"street"`
	City       string    `bson:"city" json:"city"`
	Region     string    `bson:"region,omitempty" json:"region,omitempty"`
	PostalCode string    `bson:"postal_code,omitempty" json:"postalCode,omitempty"`
	Geo        *GeoPoint `bson:"geo,omitempty" json:"geo,omitempty"`
}
