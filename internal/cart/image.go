package cart

import (
	"sort"
	"strings"
	"sync"

	"github.com/siisjewelry/siis-api/internal/constants"
)

// 缓存的会话数上限，超出后整体重建
const maxResolverSessions = 1024

// ImageSource 商品图片的可能来源字段，按优先级排列：
// storage_path → image → image_url → photo
type ImageSource struct {
	StoragePath string
	Image       string
	ImageURL    string
	Photo       string
}

// sessionImages 单个会话的解析缓存，键签名为商品 ID 集合
type sessionImages struct {
	keySig  string
	entries map[string]string
}

// ImageResolver 解析购物车行图片并缓存结果。
// 缓存按会话隔离，会话内以商品 ID 集合作键，集合变更时该会话整体失效。
type ImageResolver struct {
	baseURL string

	mu       sync.Mutex
	sessions map[string]*sessionImages
}

// NewImageResolver 创建图片解析器
func NewImageResolver(baseURL string) *ImageResolver {
	return &ImageResolver{
		baseURL:  strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		sessions: make(map[string]*sessionImages),
	}
}

// Resolve 解析单个商品图片：绝对 URL 原样使用，相对路径拼接基础地址，
// 全部为空时回退占位图
func (r *ImageResolver) Resolve(productID string, source ImageSource) string {
	candidate := firstNonEmpty(source.StoragePath, source.Image, source.ImageURL, source.Photo)
	if candidate == "" {
		return constants.PlaceholderImage
	}
	if isAbsoluteURL(candidate) {
		return candidate
	}
	if r == nil || r.baseURL == "" {
		if strings.HasPrefix(candidate, "/") {
			return candidate
		}
		return "/" + candidate
	}
	return r.baseURL + "/" + strings.TrimLeft(candidate, "/")
}

// ResolveAll 解析整车图片。会话标识非空时命中该会话的集合缓存，
// 空会话不缓存，每次都直接解析
func (r *ImageResolver) ResolveAll(session string, lines []Line, sources map[string]ImageSource) map[string]string {
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}

	if session == "" {
		resolved := make(map[string]string, len(ids))
		for _, id := range ids {
			resolved[id] = r.Resolve(id, sources[id])
		}
		return resolved
	}

	sig := idSetSignature(ids)

	r.mu.Lock()
	defer r.mu.Unlock()

	sc, ok := r.sessions[session]
	if !ok {
		if len(r.sessions) >= maxResolverSessions {
			r.sessions = make(map[string]*sessionImages)
		}
		sc = &sessionImages{}
		r.sessions[session] = sc
	}
	if sig != sc.keySig {
		sc.entries = make(map[string]string, len(ids))
		sc.keySig = sig
	}

	resolved := make(map[string]string, len(ids))
	for _, id := range ids {
		if cached, ok := sc.entries[id]; ok {
			resolved[id] = cached
			continue
		}
		url := r.Resolve(id, sources[id])
		sc.entries[id] = url
		resolved[id] = url
	}
	return resolved
}

// Forget 丢弃指定会话的解析缓存（清车与登出后调用）
func (r *ImageResolver) Forget(session string) {
	if session == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, session)
}

func idSetSignature(ids []string) string {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	unique := make([]string, 0, len(set))
	for id := range set {
		unique = append(unique, id)
	}
	sort.Strings(unique)
	return strings.Join(unique, "|")
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func isAbsoluteURL(value string) bool {
	lower := strings.ToLower(value)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
