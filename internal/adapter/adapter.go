// internal/adapter/adapter.go
package adapter

import (
	"fmt"
	"sort"
	"sync"

	"MatchBoard/internal/interfaces"

	"github.com/sirupsen/logrus"
)

// ========== 全局工厂函数注册表 ==========
var (
	factoryMu       sync.RWMutex
	factoryRegistry = make(map[string]interfaces.Factory)
)

// Register 供数据源 init 函数调用，注册工厂函数
func Register(sourceType string, factory interfaces.Factory) {
	if factory == nil {
		panic(fmt.Sprintf("数据源%s的工厂函数不能为nil", sourceType))
	}
	factoryMu.Lock()
	defer factoryMu.Unlock()
	if _, exists := factoryRegistry[sourceType]; exists {
		logrus.Warnf("数据源%s已注册，将覆盖原有实现", sourceType)
	}
	factoryRegistry[sourceType] = factory
}

// GetFactory 获取指定数据源类型的工厂函数
func GetFactory(sourceType string) (interfaces.Factory, bool) {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	factory, ok := factoryRegistry[sourceType]
	return factory, ok
}

// ListFactories 列出所有已注册的数据源类型（升序）
func ListFactories() []string {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	types := make([]string, 0, len(factoryRegistry))
	for t := range factoryRegistry {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
