package taxonomy

import (
	"fmt"
	"os"

	"go.uber.org/atomic"
	"gopkg.in/yaml.v3"
)

// Store 词表持有者
// 读方拿到的是完整快照，Swap 为整表原子替换
type Store struct {
	current atomic.Value
	path    string
}

// NewStore 创建词表持有者
// path 为空时使用内置词表；非空时从 YAML 加载，失败直接返回错误
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}
	if path == "" {
		s.current.Store(Default())
		return s, nil
	}

	t, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	s.current.Store(t)
	return s, nil
}

// NewStaticStore 使用给定词表创建（测试、离线工具用），触发词统一转小写
func NewStaticStore(t *Taxonomy) *Store {
	if t != nil {
		t.normalize()
	}
	s := &Store{}
	s.current.Store(t)
	return s
}

// Load 读取当前快照
func (s *Store) Load() *Taxonomy {
	return s.current.Load().(*Taxonomy)
}

// Swap 校验后整表替换，返回旧表
func (s *Store) Swap(t *Taxonomy) (*Taxonomy, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	t.normalize()
	return s.current.Swap(t).(*Taxonomy), nil
}

// Reload 重新读取覆盖文件；未配置文件时恢复内置词表
// 校验失败时保留当前词表
func (s *Store) Reload() (*Taxonomy, error) {
	next := Default()
	if s.path != "" {
		t, err := LoadFile(s.path)
		if err != nil {
			return nil, err
		}
		next = t
	}
	if _, err := s.Swap(next); err != nil {
		return nil, err
	}
	return next, nil
}

// LoadFile 从 YAML 文件加载词表
func LoadFile(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy file: %w", err)
	}
	return Parse(data)
}

// Parse 解析 YAML 词表
func Parse(data []byte) (*Taxonomy, error) {
	var t Taxonomy
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("invalid taxonomy: %w", err)
	}
	if t.Version == "" {
		t.Version = "file"
	}
	t.normalize()
	return &t, nil
}
