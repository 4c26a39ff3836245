package models

// SchemaVersion tags persisted and exported snapshot documents.
const SchemaVersion = "4.0.0-unified"

// DatabaseSchema is the aggregate root persisted and synchronized as one unit.
// Orders and shipments are kept newest first. The file store owns the canonical
// copy; everything else works on deep copies or mutation requests.
type DatabaseSchema struct {
	Version   string     `json:"version"`
	LastSync  int64      `json:"lastSync"`
	Products  []Product  `json:"products"`
	Orders    []Order    `json:"orders"`
	Shipments []Shipment `json:"shipments"`
	Users     []User     `json:"users"`
	Groups    []Group    `json:"groups"`
}

// Clone returns a deep copy that shares no slices with the receiver.
func (s DatabaseSchema) Clone() DatabaseSchema {
	out := s
	out.Products = append([]Product(nil), s.Products...)
	out.Orders = append([]Order(nil), s.Orders...)
	out.Shipments = append([]Shipment(nil), s.Shipments...)
	out.Users = append([]User(nil), s.Users...)
	out.Groups = make([]Group, len(s.Groups))
	for i, g := range s.Groups {
		g.Permissions = append([]Permission(nil), g.Permissions...)
		out.Groups[i] = g
	}
	return out
}

// ProductIndex returns the position of the product with the given id, or -1.
func (s DatabaseSchema) ProductIndex(id string) int {
	for i, p := range s.Products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// OrderIndex returns the position of the order with the given id, or -1.
func (s DatabaseSchema) OrderIndex(id string) int {
	for i, o := range s.Orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}

// ShipmentIndex returns the position of the shipment with the given id, or -1.
func (s DatabaseSchema) ShipmentIndex(id string) int {
	for i, sh := range s.Shipments {
		if sh.ID == id {
			return i
		}
	}
	return -1
}

// UserIndex returns the position of the user with the given id, or -1.
func (s DatabaseSchema) UserIndex(id string) int {
	for i, u := range s.Users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

// GroupIndex returns the position of the group with the given id, or -1.
func (s DatabaseSchema) GroupIndex(id string) int {
	for i, g := range s.Groups {
		if g.ID == id {
			return i
		}
	}
	return -1
}
