package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/mailio/go-campaign-console/global"
	"github.com/redis/go-redis/v9"
)

const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageRedis  = "redis"
	StorageS3     = "s3"
)

// StorageFactory opens a Storage from the storage section of the config
type StorageFactory func(conf global.StorageConfig) (Storage, error)

var (
	factoriesMu sync.RWMutex
	factories   = make(map[string]StorageFactory)
)

func init() {
	RegisterStorage(StorageMemory, func(conf global.StorageConfig) (Storage, error) {
		return NewMemoryStorage(), nil
	})
	RegisterStorage(StorageFile, func(conf global.StorageConfig) (Storage, error) {
		return NewFileStorage(conf.Path)
	})
	RegisterStorage(StorageRedis, func(conf global.StorageConfig) (Storage, error) {
		client := redis.NewClient(&redis.Options{
			Addr:     conf.Redis.Host + ":" + strconv.Itoa(conf.Redis.Port),
			Username: conf.Redis.Username,
			Password: conf.Redis.Password,
			DB:       conf.Redis.DB,
		})
		return NewRedisStorage(client, conf.Namespace), nil
	})
	RegisterStorage(StorageS3, func(conf global.StorageConfig) (Storage, error) {
		if conf.S3.Bucket == "" {
			return nil, errors.New("s3 storage requires a bucket")
		}
		return NewS3Storage(NewS3Client(conf.S3), conf.S3.Bucket, conf.S3.Prefix), nil
	})
}

// RegisterStorage makes a storage backing available by the provided name.
// If RegisterStorage is called twice with the same name or if factory is nil,
// it panics.
func RegisterStorage(name string, factory StorageFactory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()
	if factory == nil {
		panic("storage: Register factory is nil")
	}
	if _, dup := factories[name]; dup {
		panic("storage: Register called twice for " + name)
	}
	factories[name] = factory
}

// Storages returns a sorted list of the names of the registered backings
func Storages() []string {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	list := make([]string, 0, len(factories))
	for name := range factories {
		list = append(list, name)
	}
	sort.Strings(list)
	return list
}

// OpenStorage returns the backing named by conf.Type
func OpenStorage(conf global.StorageConfig) (Storage, error) {
	factoriesMu.RLock()
	factory, ok := factories[conf.Type]
	factoriesMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown storage type %q (available: %v)", conf.Type, Storages())
	}
	return factory(conf)
}

// NewS3Client builds a client with static credentials. Endpoint is optional (minio, localstack).
func NewS3Client(conf global.S3Config, optFns ...func(*s3.Options)) *s3.Client {
	opts := s3.Options{
		Region:      conf.Region,
		Credentials: aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(conf.Key, conf.Secret, "")),
	}
	if conf.Endpoint != "" {
		opts.BaseEndpoint = aws.String(conf.Endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts, optFns...)
}

// ping is used by backings that can be checked before first use
type pinger interface {
	Ping(ctx context.Context) error
}

// CheckStorage pings remote backings, local ones always succeed
func CheckStorage(ctx context.Context, s Storage) error {
	if p, ok := s.(pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
