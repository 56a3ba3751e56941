package server

// REQUESTS

// UploadRequest is the body of POST /files. ParentId is untyped on
// purpose: clients send either the number 0 or an id string.
type UploadRequest struct {
	Name     string      `json:"name"`
	Type     string      `json:"type"`
	Data     string      `json:"data"`
	IsPublic bool        `json:"isPublic"`
	ParentId interface{} `json:"parentId"`
}

type NewUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RESPONSES

type ErrResponse struct {
	Error string `json:"error"`
}

type ConnectResponse struct {
	Token string `json:"token"`
}

type UserResponse struct {
	Id    string `json:"id"`
	Email string `json:"email"`
}

type StatusResponse struct {
	Redis bool `json:"redis"`
	Db    bool `json:"db"`
}

type StatsResponse struct {
	Users int64 `json:"users"`
	Files int64 `json:"files"`
}
