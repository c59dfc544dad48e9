package domain

// House is a property owned by someone. Owner is free text, not a user id.
type House struct {
	ID    string `json:"id" bson:"_id"`
	Name  string `json:"name" bson:"name"`
	Owner string `json:"owner" bson:"owner"`
}
