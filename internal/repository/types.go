package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page       int
	PageSize   int
	Category   string
	Search     string
	OnlyActive bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	MemberID    uint
	Status      string
	Search      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// MemberListFilter 查询会员列表的过滤条件
type MemberListFilter struct {
	Page     int
	PageSize int
	Search   string
	Level    string
	Status   string
}
