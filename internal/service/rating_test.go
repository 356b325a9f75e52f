package service

import "testing"

func TestSyntheticRatingDeterministic(t *testing.T) {
	first := SyntheticRating("42")
	second := SyntheticRating("42")
	if first != second {
		t.Fatalf("rating should be stable, got %v and %v", first, second)
	}
	if first < 3.5 || first > 4.9 {
		t.Fatalf("rating out of range: %v", first)
	}
}

func TestSyntheticReviewsDeterministic(t *testing.T) {
	first := SyntheticReviews("42")
	second := SyntheticReviews("42")
	if first != second {
		t.Fatalf("reviews should be stable, got %d and %d", first, second)
	}
	if first < 15 || first > 214 {
		t.Fatalf("reviews out of range: %d", first)
	}
}

func TestSyntheticRatingSeedByteSum(t *testing.T) {
	// "12" 的字节和为 49+50=99，99%15=9 → 3.5+0.9
	if got := SyntheticRating("12"); got != 4.4 {
		t.Fatalf("rating for 12 want 4.4 got %v", got)
	}
	// 99%200=99 → 15+99
	if got := SyntheticReviews("12"); got != 114 {
		t.Fatalf("reviews for 12 want 114 got %d", got)
	}
}
