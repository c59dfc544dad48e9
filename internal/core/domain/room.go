package domain

// Room is a space inside a house. HouseID is stored verbatim and never
// checked against the house store.
type Room struct {
	ID      string `json:"id" bson:"_id"`
	Name    string `json:"name" bson:"name"`
	HouseID string `json:"houseId" bson:"house_id"`
}
