package models

import "time"

type Shipment struct {
	ID            int64
	TrackingCode  string
	ShippingName  string
	PackageNumber string
	Weight        float64
	Quantity      int
	Flight        string
	CustomerCode  string
	CreatedAt     time.Time
}
