package service

import (
	"strings"

	"github.com/siisjewelry/siis-api/internal/constants"
)

// orderStatusTransitions 订单状态机：键为当前状态，值为允许迁入的下一状态
var orderStatusTransitions = map[string][]string{
	constants.OrderStatusPending: {
		constants.OrderStatusPaid,
		constants.OrderStatusProcessing,
		constants.OrderStatusCancelled,
	},
	constants.OrderStatusPaid: {
		constants.OrderStatusProcessing,
		constants.OrderStatusShipped,
		constants.OrderStatusCancelled,
	},
	constants.OrderStatusProcessing: {
		constants.OrderStatusShipped,
		constants.OrderStatusCancelled,
	},
	constants.OrderStatusShipped: {
		constants.OrderStatusDelivered,
		constants.OrderStatusCompleted,
		constants.OrderStatusCancelled,
	},
	constants.OrderStatusDelivered: {
		constants.OrderStatusCompleted,
	},
	// completed 与 cancelled 是终态
	constants.OrderStatusCompleted: {},
	constants.OrderStatusCancelled: {},
}

// NormalizeOrderStatus 归一化状态值，非法状态返回空串
func NormalizeOrderStatus(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	for _, status := range constants.OrderStatuses {
		if value == status {
			return status
		}
	}
	return ""
}

// CanTransitionOrderStatus 判断订单状态能否从 from 迁移到 to
func CanTransitionOrderStatus(from, to string) bool {
	if from == to {
		return false
	}
	allowed, ok := orderStatusTransitions[from]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == to {
			return true
		}
	}
	return false
}
