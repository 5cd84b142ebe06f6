package covers

import (
	"errors"
	"fmt"
	"strconv"
)

// Category is one of the six closed genre ids.
type Category int

const (
	CategoryPopsAnime      Category = 1
	CategoryNiconico       Category = 2
	CategoryTouhou         Category = 3
	CategoryGameVariety    Category = 4
	CategoryMaimai         Category = 5
	CategoryOngekiChunithm Category = 6
)

// ExcludedCategoryCode is the party category. Its entries are skipped before classification.
const ExcludedCategoryCode = "宴会場"

// ErrUnknownCategory matches every *UnknownCategoryError.
var ErrUnknownCategory = errors.New("unknown category code")

// UnknownCategoryError reports a catalog code outside the known taxonomy.
type UnknownCategoryError struct {
	Code  string
	Title string
}

func (e *UnknownCategoryError) Error() string {
	if e.Title == "" {
		return fmt.Sprintf("unknown category code %q", e.Code)
	}
	return fmt.Sprintf("unknown category code %q (title %q)", e.Code, e.Title)
}

// Is lets errors.Is match ErrUnknownCategory.
func (e *UnknownCategoryError) Is(target error) bool {
	return target == ErrUnknownCategory
}

// Classify maps a catalog category code to its id.
func Classify(code string) (Category, error) {
	switch code {
	case "POPS＆アニメ":
		return CategoryPopsAnime, nil
	case "niconico＆ボーカロイド":
		return CategoryNiconico, nil
	case "東方Project":
		return CategoryTouhou, nil
	case "ゲーム＆バラエティ":
		return CategoryGameVariety, nil
	case "maimai":
		return CategoryMaimai, nil
	case "オンゲキ＆CHUNITHM":
		return CategoryOngekiChunithm, nil
	default:
		return 0, &UnknownCategoryError{Code: code}
	}
}

// String returns the decimal id used in keys.
func (c Category) String() string {
	return strconv.Itoa(int(c))
}
