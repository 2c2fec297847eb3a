package core

// Entity is an opaque identity key into component stores
// Zero is never issued and marks "no entity"
type Entity uint64
