package service

// ratingSeed 按编号字符逐字节累加，保证同一商品每次得到相同评分
func ratingSeed(id string) int {
	seed := 0
	for _, ch := range []byte(id) {
		seed += int(ch)
	}
	return seed
}

// SyntheticRating 为缺少真实评分的商品生成稳定评分，范围 3.5 ~ 4.9
func SyntheticRating(id string) float64 {
	return 3.5 + float64(ratingSeed(id)%15)/10
}

// SyntheticReviews 为缺少真实评价数的商品生成稳定评价数，范围 15 ~ 214
func SyntheticReviews(id string) int {
	return 15 + ratingSeed(id)%200
}
