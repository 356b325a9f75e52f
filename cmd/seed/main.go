package main

import (
	"github.com/siisjewelry/siis-api/internal/config"
	"github.com/siisjewelry/siis-api/internal/logger"
	"github.com/siisjewelry/siis-api/internal/models"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	products := []models.Product{
		{
			Name:        "经典单钻戒指",
			Description: "18K 白金镶嵌 30 分主钻，日常佩戴与求婚皆宜。",
			PriceAmount: models.NewMoneyFromFloat(12800),
			Category:    "戒指",
			Stock:       12,
			Images:      models.StringArray{},
			TagText:     "热卖",
			TagColor:    "red",
			IsActive:    true,
		},
		{
			Name:        "流光锁骨链",
			Description: "925 纯银镀铂金，锁骨链长度 40+5cm 可调节。",
			PriceAmount: models.NewMoneyFromFloat(680),
			Category:    "项链",
			Stock:       45,
			Images:      models.StringArray{},
			TagText:     "新品",
			TagColor:    "gold",
			IsActive:    true,
		},
		{
			Name:        "珍珠耳钉",
			Description: "天然淡水珍珠 7-8mm，正圆强光，送礼自用两相宜。",
			PriceAmount: models.NewMoneyFromFloat(420),
			Category:    "耳饰",
			Stock:       60,
			Images:      models.StringArray{},
			IsActive:    true,
		},
		{
			Name:        "玫瑰金手链",
			Description: "14K 玫瑰金编织手链，轻盈百搭。",
			PriceAmount: models.NewMoneyFromFloat(1580),
			Category:    "手链",
			Stock:       28,
			Images:      models.StringArray{},
			IsActive:    true,
		},
		{
			Name:        "祖母绿吊坠",
			Description: "赞比亚祖母绿 0.8ct，18K 金托，附鉴定证书。",
			PriceAmount: models.NewMoneyFromFloat(8600),
			Category:    "项链",
			Stock:       5,
			Images:      models.StringArray{},
			TagText:     "限量",
			TagColor:    "green",
			IsActive:    true,
		},
		{
			Name:        "素圈对戒",
			Description: "铂金 PT950 素圈，情侣对戒，内壁可免费刻字。",
			PriceAmount: models.NewMoneyFromFloat(2380),
			Category:    "戒指",
			Stock:       30,
			Images:      models.StringArray{},
			IsActive:    true,
		},
	}

	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("name = ?", product.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Name, err)
			} else {
				stdLog.Printf("Created product: %s", product.Name)
			}
		} else {
			stdLog.Printf("Product already exists: %s", product.Name)
		}
	}

	stdLog.Println("Seed completed")
}
