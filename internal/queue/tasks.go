package queue

import (
	"encoding/json"

	"github.com/siisjewelry/siis-api/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskMemberPurchaseAggregate 会员消费汇总任务
	TaskMemberPurchaseAggregate = constants.TaskMemberPurchaseAggregate
)

// MemberPurchaseAggregatePayload 会员消费汇总任务载荷
type MemberPurchaseAggregatePayload struct {
	OrderID uint `json:"order_id"`
}

// NewMemberPurchaseAggregateTask 创建会员消费汇总任务
func NewMemberPurchaseAggregateTask(payload MemberPurchaseAggregatePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskMemberPurchaseAggregate, body), nil
}
