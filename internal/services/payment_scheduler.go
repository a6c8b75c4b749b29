package services

import (
	"sync"
	"time"

	"rentease/pkg/logger"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// PaymentScheduler 账单逾期调度器
// 每天凌晨扫描一次，把到期未付的账单置为逾期
type PaymentScheduler struct {
	db       *gorm.DB
	cron     *cron.Cron
	payments *PaymentService
	mu       sync.Mutex
	running  bool
}

// NewPaymentScheduler 创建账单逾期调度器
func NewPaymentScheduler(db *gorm.DB) *PaymentScheduler {
	return &PaymentScheduler{
		db:       db,
		cron:     cron.New(),
		payments: NewPaymentService(db),
	}
}

// Start 启动调度器
func (s *PaymentScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	log := logger.GetLogger()
	log.Info("启动账单逾期调度器")

	// 每天凌晨2点执行
	if _, err := s.cron.AddFunc("0 2 * * *", s.runOnce); err != nil {
		return err
	}

	s.cron.Start()
	s.running = true

	return nil
}

// Stop 停止调度器
func (s *PaymentScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	log := logger.GetLogger()
	log.Info("停止账单逾期调度器")

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.running = false
}

// RunNow 立即执行一次逾期扫描（管理端手动触发用）
func (s *PaymentScheduler) RunNow() (int, error) {
	return s.payments.MarkOverdueDue(time.Now())
}

func (s *PaymentScheduler) runOnce() {
	log := logger.GetLogger()

	count, err := s.payments.MarkOverdueDue(time.Now())
	if err != nil {
		log.WithError(err).Error("账单逾期扫描失败")
		return
	}

	if count > 0 {
		log.Infof("账单逾期扫描完成，本次标记 %d 笔", count)
	}
}

// 全局调度器实例
var (
	globalPaymentScheduler *PaymentScheduler
	schedulerMu            sync.RWMutex
)

// SetGlobalPaymentScheduler 设置全局调度器实例
func SetGlobalPaymentScheduler(scheduler *PaymentScheduler) {
	schedulerMu.Lock()
	defer schedulerMu.Unlock()
	globalPaymentScheduler = scheduler
}

// GetGlobalPaymentScheduler 获取全局调度器实例
func GetGlobalPaymentScheduler() *PaymentScheduler {
	schedulerMu.RLock()
	defer schedulerMu.RUnlock()
	return globalPaymentScheduler
}
