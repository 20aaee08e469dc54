package entities

import (
	"slices"
	"strings"
)

// TagList: набор строк с сохранением порядка вставки, без дублей и пустых значений.
type TagList []string

func NewTagList(tags ...string) TagList {
	list := make(TagList, 0, len(tags))
	for _, tag := range tags {
		list.Add(tag)
	}
	return list
}

func (t *TagList) Add(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" || slices.Contains(*t, tag) {
		return false
	}
	*t = append(*t, tag)
	return true
}

func (t *TagList) Remove(tag string) bool {
	i := slices.Index(*t, strings.TrimSpace(tag))
	if i < 0 {
		return false
	}
	*t = slices.Delete(*t, i, i+1)
	return true
}

func (t TagList) String() string { return strings.Join(t, ", ") }
