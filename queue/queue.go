package queue

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/noisersup/files-manager-api/models"
)

// Queue pushes post-processing jobs onto a redis list consumed by the
// background worker. Enqueue is fire-and-forget: nothing waits for
// the job to be picked up, let alone finished.
type Queue struct {
	pool *redis.Pool
	name string
}

// Connects to redis under the provided url and returns a queue
// publishing to the list with the given name (ex. "fileQueue")
func InitQueue(url, name string) (*Queue, error) {
	pool := &redis.Pool{
		MaxIdle:     3,
		IdleTimeout: 240 * time.Second,
		Dial: func() (redis.Conn, error) {
			return redis.DialURL(url)
		},
	}

	conn := pool.Get()
	defer conn.Close()
	if _, err := conn.Do("PING"); err != nil {
		pool.Close()
		return nil, errors.New("queue: ping failed")
	}

	return &Queue{pool: pool, name: name}, nil
}

func (q *Queue) Close() error {
	return q.pool.Close()
}

func (q *Queue) Enqueue(job models.Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return err
	}

	conn := q.pool.Get()
	defer conn.Close()

	_, err = conn.Do("RPUSH", q.name, payload)
	return err
}
