package cart

import (
	"testing"

	"github.com/siisjewelry/siis-api/internal/constants"
)

func TestImageResolverFallbackOrder(t *testing.T) {
	r := NewImageResolver("https://cdn.example.com")

	got := r.Resolve("1", ImageSource{
		StoragePath: "uploads/products/a.jpg",
		Image:       "uploads/products/b.jpg",
	})
	if got != "https://cdn.example.com/uploads/products/a.jpg" {
		t.Fatalf("storage_path should win, got %s", got)
	}

	got = r.Resolve("1", ImageSource{Image: "/uploads/products/b.jpg", Photo: "c.jpg"})
	if got != "https://cdn.example.com/uploads/products/b.jpg" {
		t.Fatalf("image should win over photo, got %s", got)
	}

	got = r.Resolve("1", ImageSource{ImageURL: "https://img.example.com/x.png"})
	if got != "https://img.example.com/x.png" {
		t.Fatalf("absolute url should pass through, got %s", got)
	}

	got = r.Resolve("1", ImageSource{})
	if got != constants.PlaceholderImage {
		t.Fatalf("empty source should fall back to placeholder, got %s", got)
	}
}

func TestImageResolverWithoutBaseURL(t *testing.T) {
	r := NewImageResolver("")
	got := r.Resolve("1", ImageSource{Photo: "photo.jpg"})
	if got != "/photo.jpg" {
		t.Fatalf("relative path without base url want /photo.jpg got %s", got)
	}
}

func TestImageResolverCacheInvalidatesOnIDSetChange(t *testing.T) {
	r := NewImageResolver("")
	lines := []Line{{ProductID: "1"}, {ProductID: "2"}}
	sources := map[string]ImageSource{
		"1": {Image: "/a.jpg"},
		"2": {Image: "/b.jpg"},
	}

	resolved := r.ResolveAll("member:1", lines, sources)
	if resolved["1"] != "/a.jpg" || resolved["2"] != "/b.jpg" {
		t.Fatalf("unexpected resolution %v", resolved)
	}

	// 同一会话同一集合命中缓存，源变更不影响结果
	sources["1"] = ImageSource{Image: "/changed.jpg"}
	resolved = r.ResolveAll("member:1", lines, sources)
	if resolved["1"] != "/a.jpg" {
		t.Fatalf("same id set should hit cache, got %s", resolved["1"])
	}

	// 集合变更后该会话整体失效并重新解析
	lines = append(lines, Line{ProductID: "3"})
	sources["3"] = ImageSource{Image: "/c.jpg"}
	resolved = r.ResolveAll("member:1", lines, sources)
	if resolved["1"] != "/changed.jpg" {
		t.Fatalf("changed id set should refresh cache, got %s", resolved["1"])
	}
	if resolved["3"] != "/c.jpg" {
		t.Fatalf("new id should resolve, got %s", resolved["3"])
	}
}

func TestImageResolverCacheIsPerSession(t *testing.T) {
	r := NewImageResolver("")
	lines := []Line{{ProductID: "1"}}

	resolved := r.ResolveAll("member:1", lines, map[string]ImageSource{"1": {Image: "/a.jpg"}})
	if resolved["1"] != "/a.jpg" {
		t.Fatalf("unexpected resolution %v", resolved)
	}

	// 另一个会话持有同一商品但不同图片源，不能串用缓存
	resolved = r.ResolveAll("member:2", lines, map[string]ImageSource{"1": {Image: "/b.jpg"}})
	if resolved["1"] != "/b.jpg" {
		t.Fatalf("other session should resolve independently, got %s", resolved["1"])
	}

	// 两个会话的缓存互不失效
	resolved = r.ResolveAll("member:1", lines, map[string]ImageSource{"1": {Image: "/x.jpg"}})
	if resolved["1"] != "/a.jpg" {
		t.Fatalf("first session cache should survive, got %s", resolved["1"])
	}

	// 会话被丢弃后重新解析
	r.Forget("member:1")
	resolved = r.ResolveAll("member:1", lines, map[string]ImageSource{"1": {Image: "/x.jpg"}})
	if resolved["1"] != "/x.jpg" {
		t.Fatalf("forgotten session should re-resolve, got %s", resolved["1"])
	}
}

func TestImageResolverEmptySessionSkipsCache(t *testing.T) {
	r := NewImageResolver("")
	lines := []Line{{ProductID: "1"}}

	resolved := r.ResolveAll("", lines, map[string]ImageSource{"1": {Image: "/a.jpg"}})
	if resolved["1"] != "/a.jpg" {
		t.Fatalf("unexpected resolution %v", resolved)
	}
	resolved = r.ResolveAll("", lines, map[string]ImageSource{"1": {Image: "/b.jpg"}})
	if resolved["1"] != "/b.jpg" {
		t.Fatalf("empty session should not cache, got %s", resolved["1"])
	}
}
