package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const IndexCachePrefix = "index_page:"

// PageCacheStore 整页缓存存储。注入接口而不是进程级单例，生产走 redis。
type PageCacheStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Clear(ctx context.Context, prefix string) error
}

// cachedPage 序列化后的缓存条目
type cachedPage struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// CachePage 整页缓存中间件：窗口期内重复请求原样回放已渲染字节。
// 只缓存 GET 且下游返回 200 的响应，键为 prefix + 完整请求 URI。
func CachePage(store PageCacheStore, ttl time.Duration, prefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := prefix + c.Request.URL.RequestURI()
		if raw, ok, err := store.Get(c.Request.Context(), key); err == nil && ok {
			var page cachedPage
			if json.Unmarshal(raw, &page) == nil {
				c.Data(page.Status, page.ContentType, page.Body)
				c.Abort()
				return
			}
		}

		w := &teeWriter{ResponseWriter: c.Writer, buf: &bytes.Buffer{}}
		c.Writer = w
		c.Next()

		if w.Status() != http.StatusOK {
			return
		}
		raw, err := json.Marshal(cachedPage{
			Status:      w.Status(),
			ContentType: w.Header().Get("Content-Type"),
			Body:        w.buf.Bytes(),
		})
		if err != nil {
			return
		}
		_ = store.Set(c.Request.Context(), key, raw, ttl)
	}
}

// teeWriter 把响应同时写给客户端和缓冲区
type teeWriter struct {
	gin.ResponseWriter
	buf *bytes.Buffer
}

func (w *teeWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *teeWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// MemoryPageCache 内存实现：测试和没有 redis 的本地运行用
type MemoryPageCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value   []byte
	expires time.Time
}

func NewMemoryPageCache() *MemoryPageCache {
	return &MemoryPageCache{entries: map[string]memoryEntry{}}
}

func (m *MemoryPageCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if time.Now().After(e.expires) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, false, nil
	}
	return e.value, true, nil
}

func (m *MemoryPageCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	m.entries[key] = memoryEntry{value: value, expires: time.Now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

func (m *MemoryPageCache) Clear(_ context.Context, prefix string) error {
	m.mu.Lock()
	for k := range m.entries {
		if strings.HasPrefix(k, prefix) {
			delete(m.entries, k)
		}
	}
	m.mu.Unlock()
	return nil
}
