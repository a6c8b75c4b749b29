package database

import (
	"rentease/pkg/config"
	"rentease/pkg/session"
	"sync"
)

var (
	sessionStoreInstance *session.Store
	sessionStoreOnce     sync.Once
)

// GetSessionStore 获取Redis会话存储的单例实例
func GetSessionStore() *session.Store {
	sessionStoreOnce.Do(func() {
		cfg := config.GetConfig()
		sessionStoreInstance = session.NewStore(&session.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
	})
	return sessionStoreInstance
}

// CloseSessionStore 关闭Redis连接
func CloseSessionStore() error {
	if sessionStoreInstance != nil {
		return sessionStoreInstance.Close()
	}
	return nil
}
