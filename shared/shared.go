package shared

import (
	"context"
	"listo/shared/cache"
	"listo/shared/constant"
	"listo/shared/dto"
	"reflect"
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"
)

// TransformFields converts the set fields of a struct into a column map for an update.
// Nil pointers and zero values are skipped; pointers are dereferenced.
func TransformFields(data interface{}) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" || fieldName == "-" {
			continue
		}

		if field.Kind() == reflect.Pointer {
			field = field.Elem()
		}

		updatedFields[fieldName] = field.Interface()
	}

	return updatedFields
}

func FilterByID(id any, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// Slugify lowercases name and joins its words with hyphens. Characters other than
// letters, digits, '-' and '_' are dropped.
func Slugify(name string) string {
	words := strings.Fields(strings.ToLower(name))

	var builder strings.Builder

	for i, word := range words {
		if i > 0 {
			builder.WriteString(constant.SlugSeparator)
		}

		for _, r := range word {
			if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
				builder.WriteRune(r)
			}
		}
	}

	slug := strings.Trim(builder.String(), constant.SlugSeparator)
	if slug == "" {
		return constant.SlugFallback
	}

	return slug
}

func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), constant.CacheKeySeparator)
}

func InvalidateCaches(ctx context.Context, c cache.RedisCache, keys ...string) {
	for _, key := range keys {
		if err := c.Invalidate(ctx, key); err != nil {
			log.Error().Err(err).Str("key", key).Msg("failed to invalidate cache")
		}
	}
}
