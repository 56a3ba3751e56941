package cache

import (
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"
)

// Returned by Get when the key does not exist or already expired.
var KeyNotFound error = errors.New("Key not found")

// Cache wraps a redis connection pool used for short-lived session
// entries. Entries carry a server-side expiry set with SETEX.
type Cache struct {
	pool *redis.Pool
}

// Connects to redis under the provided url (ex. "redis://localhost")
// and returns cache object
func InitCache(url string) (*Cache, error) {
	pool := &redis.Pool{
		MaxIdle:     3,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redis.Conn, error) {
			return redis.DialURL(url)
		},
	}

	c := Cache{pool: pool}
	if !c.IsAlive() {
		pool.Close()
		return nil, errors.New("cache: ping failed")
	}

	return &c, nil
}

func (c *Cache) Close() error {
	return c.pool.Close()
}

func (c *Cache) IsAlive() bool {
	conn := c.pool.Get()
	defer conn.Close()

	_, err := conn.Do("PING")
	return err == nil
}

func (c *Cache) Get(key string) (string, error) {
	conn := c.pool.Get()
	defer conn.Close()

	value, err := redis.String(conn.Do("GET", key))
	if err != nil {
		if err == redis.ErrNil {
			return "", KeyNotFound
		}
		return "", err
	}
	return value, nil
}

func (c *Cache) Set(key, value string, expiry time.Duration) error {
	conn := c.pool.Get()
	defer conn.Close()

	_, err := conn.Do("SETEX", key, int64(expiry.Seconds()), value)
	return err
}

func (c *Cache) Del(key string) error {
	conn := c.pool.Get()
	defer conn.Close()

	_, err := conn.Do("DEL", key)
	return err
}
