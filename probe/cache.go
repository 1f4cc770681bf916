package probe

import (
	"sync"
	"time"

	"github.com/clipedit/clipedit/filesystem"
	"github.com/clipedit/clipedit/where"
	"github.com/metafates/gache"
	"github.com/samber/mo"
)

type cacheData struct {
	Probes map[string]*Info `json:"probes"`
}

// Cache persists probe results under where.Probes().
type Cache struct {
	internal *gache.Cache[*cacheData]
	mu       sync.RWMutex
}

// NewCache returns a disk cache; a zero lifetime never expires.
func NewCache(lifetime time.Duration) *Cache {
	return &Cache{
		internal: gache.New[*cacheData](&gache.Options{
			Path:       where.Probes(),
			Lifetime:   lifetime,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

func (c *Cache) Get(key string) mo.Option[*Info] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return mo.None[*Info]()
	}

	info, ok := data.Probes[key]
	if !ok {
		return mo.None[*Info]()
	}
	return mo.Some(info)
}

func (c *Cache) Set(key string, info *Info) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil {
		return err
	}

	if expired || data == nil || data.Probes == nil {
		data = &cacheData{Probes: make(map[string]*Info)}
	}

	data.Probes[key] = info
	return c.internal.Set(data)
}
