package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Store Redis会话存储
type Store struct {
	client *redis.Client
	prefix string
}

// Record 会话记录
type Record struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Token     string `json:"token"`
	LoginAt   int64  `json:"login_at"`
	ExpiresAt int64  `json:"expires_at"`
	ClientIP  string `json:"client_ip"`
}

// Config Redis配置
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	Prefix   string
}

// NewStore 创建会话存储实例
func NewStore(config *Config) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	prefix := config.Prefix
	if prefix == "" {
		prefix = "rentease:session"
	}

	return &Store{
		client: client,
		prefix: prefix,
	}
}

// Close 关闭Redis连接
func (s *Store) Close() error {
	return s.client.Close()
}

// Ping 测试Redis连接
func (s *Store) Ping() error {
	ctx := context.Background()
	return s.client.Ping(ctx).Err()
}

// GetClient 获取底层Redis客户端（用于pub/sub等场景）
func (s *Store) GetClient() *redis.Client {
	return s.client
}

// Save 保存会话记录，ttl过期后自动清除
func (s *Store) Save(record *Record, ttl time.Duration) error {
	ctx := context.Background()

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("序列化会话记录失败: %v", err)
	}

	key := s.sessionKey(record.UserID)
	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("保存会话失败: %v", err)
	}

	return nil
}

// Get 读取会话记录，不存在时返回 redis.Nil
func (s *Store) Get(userID uint) (*Record, error) {
	ctx := context.Background()

	data, err := s.client.Get(ctx, s.sessionKey(userID)).Bytes()
	if err != nil {
		return nil, err
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("解析会话记录失败: %v", err)
	}

	return &record, nil
}

// Delete 清除会话记录，不存在时也视为成功
func (s *Store) Delete(userID uint) error {
	ctx := context.Background()
	return s.client.Del(ctx, s.sessionKey(userID)).Err()
}

// PublishNotification 向用户的通知频道发布消息
func (s *Store) PublishNotification(userID uint, payload interface{}) error {
	ctx := context.Background()

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("序列化通知消息失败: %v", err)
	}

	return s.client.Publish(ctx, NotificationChannel(userID), data).Err()
}

// NotificationChannel 用户通知频道名
func NotificationChannel(userID uint) string {
	return fmt.Sprintf("notify:user:%d", userID)
}

func (s *Store) sessionKey(userID uint) string {
	return fmt.Sprintf("%s:%d", s.prefix, userID)
}
