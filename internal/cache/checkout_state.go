package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/siisjewelry/siis-api/internal/constants"
)

// 结算暂存：每个会话一对键（checkoutUser / checkoutCartItems），
// 只桥接一次结算跳转，提交订单后立即清除。

func checkoutUserKey(session string) string {
	return fmt.Sprintf("checkout:%s:%s", session, constants.CheckoutStagingUserKey)
}

func checkoutCartKey(session string) string {
	return fmt.Sprintf("checkout:%s:%s", session, constants.CheckoutStagingCartKey)
}

// StageCheckout 写入结算暂存数据
func StageCheckout(ctx context.Context, session string, user, cartItems interface{}, ttlSeconds int) error {
	if session == "" {
		return nil
	}
	ttl := secondsToDuration(ttlSeconds)
	if err := SetJSON(ctx, checkoutUserKey(session), user, ttl); err != nil {
		return err
	}
	return SetJSON(ctx, checkoutCartKey(session), cartItems, ttl)
}

// GetStagedCheckoutUser 读取暂存的结算用户快照
func GetStagedCheckoutUser(ctx context.Context, session string, dest interface{}) (bool, error) {
	if session == "" {
		return false, nil
	}
	return GetJSON(ctx, checkoutUserKey(session), dest)
}

// GetStagedCheckoutCart 读取暂存的结算购物车快照
func GetStagedCheckoutCart(ctx context.Context, session string, dest interface{}) (bool, error) {
	if session == "" {
		return false, nil
	}
	return GetJSON(ctx, checkoutCartKey(session), dest)
}

// ClearCheckoutStaging 清除结算暂存数据
func ClearCheckoutStaging(ctx context.Context, session string) error {
	if session == "" {
		return nil
	}
	return Del(ctx, checkoutUserKey(session), checkoutCartKey(session))
}

func secondsToDuration(seconds int) time.Duration {
	if seconds <= 0 {
		seconds = 1800
	}
	return time.Duration(seconds) * time.Second
}
