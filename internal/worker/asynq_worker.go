package worker

import (
	"context"
	"encoding/json"

	"github.com/siisjewelry/siis-api/internal/logger"
	"github.com/siisjewelry/siis-api/internal/provider"
	"github.com/siisjewelry/siis-api/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskMemberPurchaseAggregate, c.handleMemberPurchaseAggregate)
}

// handleMemberPurchaseAggregate 消费会员消费汇总任务。
// 汇总本身幂等，重复投递不会造成重复累计
func (c *Consumer) handleMemberPurchaseAggregate(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_member_purchase_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.MemberPurchaseAggregatePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_member_purchase_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_member_purchase_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if c.MemberService == nil {
		logger.Warnw("worker_member_purchase_skip_service_nil", "order_id", payload.OrderID)
		return nil
	}
	if err := c.MemberService.ApplyPurchase(payload.OrderID); err != nil {
		logger.Warnw("worker_member_purchase_aggregate_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	return nil
}
