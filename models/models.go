package models

import (
	"time"

	"github.com/google/uuid"
)

// File types accepted by the upload endpoint.
const (
	TypeFolder = "folder"
	TypeFile   = "file"
	TypeImage  = "image"
)

// ValidType reports whether t is one of folder, file or image.
func ValidType(t string) bool {
	return t == TypeFolder || t == TypeFile || t == TypeImage
}

type User struct {
	Id       uuid.UUID
	Email    string
	Password string // bcrypt hash, never serialized
}

// File is a single node of the file tree. ParentId equal to uuid.Nil
// means the file sits at the root. LocalPath is set only for
// non-folder types and points at the decoded payload on disk.
type File struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Name      string
	Type      string
	IsPublic  bool
	ParentId  uuid.UUID
	LocalPath string
}

// PublicFile is the projection of a File returned to clients.
// LocalPath stays internal. A root ParentId is rendered as "0".
type PublicFile struct {
	Id       string `json:"id"`
	UserId   string `json:"userId"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	IsPublic bool   `json:"isPublic"`
	ParentId string `json:"parentId"`
}

func (f *File) Public() PublicFile {
	parent := "0"
	if f.ParentId != uuid.Nil {
		parent = f.ParentId.String()
	}
	return PublicFile{
		Id:       f.Id.String(),
		UserId:   f.UserId.String(),
		Name:     f.Name,
		Type:     f.Type,
		IsPublic: f.IsPublic,
		ParentId: parent,
	}
}

// Job is the unit handed to the background queue after a payload
// upload. The worker picks it up later, nothing is awaited here.
type Job struct {
	UserId uuid.UUID `json:"userId"`
	FileId uuid.UUID `json:"fileId"`
}

type Database interface {
	Close()
	IsAlive() bool
	NewUser(email, hashedPassword string) (*User, error)
	GetUser(id uuid.UUID) (*User, error)
	GetUserByEmail(email string) (*User, error)
	CountUsers() (int64, error)
	CountFiles() (int64, error)
	NewFile(f *File) error
	GetFile(id, userId uuid.UUID) (*File, error)
	GetFileById(id uuid.UUID) (*File, error)
	ListFiles(userId, parentId uuid.UUID, offset, limit int) ([]File, error)
	SetFilePublic(id, userId uuid.UUID, isPublic bool) (*File, error)
}

type Cache interface {
	Close() error
	IsAlive() bool
	Get(key string) (string, error)
	Set(key, value string, expiry time.Duration) error
	Del(key string) error
}

type Queue interface {
	Close() error
	Enqueue(job Job) error
}
