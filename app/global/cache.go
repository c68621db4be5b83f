package global

import "go-kanban/app/pkg/cache"

var Cache *cache.Client

func initCache(conf *cache.Config) (err error) {
	Cache, err = cache.NewClient(conf)
	return
}
