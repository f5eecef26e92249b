package postgres

import (
	"fmt"
	"listings-service/internal/core/domain"
	"strings"
)

type queryBuilder struct {
	conditions []string
	args       []interface{}
	argId      int
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{
		argId:      1,
		conditions: make([]string, 0),
		args:       make([]interface{}, 0),
	}
}

func (qb *queryBuilder) addCondition(condition string, fieldName string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, fieldName, qb.argId))
	qb.args = append(qb.args, arg)
	qb.argId++
}

// AddFloatRange добавляет инклюзивный диапазон. nil-границы не накладывают ограничений.
func (qb *queryBuilder) AddFloatRange(fieldName string, min *float64, max *float64) {
	if min != nil {
		qb.addCondition("%s >= $%d", fieldName, *min)
	}
	if max != nil {
		qb.addCondition("%s <= $%d", fieldName, *max)
	}
}

func (qb *queryBuilder) AddIntEquals(fieldName string, value *int) {
	if value != nil {
		qb.addCondition("%s = $%d", fieldName, *value)
	}
}

func (qb *queryBuilder) AddBoolEquals(fieldName string, value *bool) {
	if value != nil {
		qb.addCondition("%s = $%d", fieldName, *value)
	}
}

// Метасимволы LIKE в пользовательском вводе экранируются: поиск означает
// буквальное вхождение подстроки, а не шаблон.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// AddSearch добавляет регистронезависимый поиск подстроки по нескольким колонкам (OR).
// Один и тот же аргумент используется для всех колонок.
func (qb *queryBuilder) AddSearch(search string, fieldNames ...string) {
	if search == "" || len(fieldNames) == 0 {
		return
	}

	tests := make([]string, 0, len(fieldNames))
	for _, fieldName := range fieldNames {
		tests = append(tests, fmt.Sprintf("%s ILIKE $%d", fieldName, qb.argId))
	}
	qb.conditions = append(qb.conditions, "("+strings.Join(tests, " OR ")+")")
	qb.args = append(qb.args, "%"+likeEscaper.Replace(search)+"%")
	qb.argId++
}

// build создает финальные части запроса
func (qb *queryBuilder) build() (string, []interface{}) {
	whereClause := ""
	if len(qb.conditions) > 0 {
		whereClause = "WHERE " + strings.Join(qb.conditions, " AND ")
	}
	return whereClause, qb.args
}

// applyFilters - главный метод, который разбирает фильтры и строит WHERE clause.
// Каждый вид ограничения обрабатывается явно: новый фильтр в домене не попадёт
// в SQL, пока сюда не добавлена его интерпретация.
func applyFilters(filters domain.ApartmentFilters) (string, []interface{}) {
	qb := newQueryBuilder()

	// Поиск подстроки по названию юнита, номеру и проекту
	qb.AddSearch(filters.Search, "a.unit_name", "a.unit_number", "a.project")

	qb.AddFloatRange("a.price", filters.MinPrice, filters.MaxPrice)
	qb.AddFloatRange("a.area", filters.MinArea, filters.MaxArea)

	qb.AddIntEquals("a.bedrooms", filters.Bedrooms)
	qb.AddIntEquals("a.bathrooms", filters.Bathrooms)
	qb.AddBoolEquals("a.is_available", filters.IsAvailable)

	return qb.build()
}

// sortColumns - белый список сортируемых полей. Ключи совпадают с domain.SortBy*.
var sortColumns = map[string]string{
	domain.SortByCreatedAt: "a.created_at",
	domain.SortByPrice:     "a.price",
	domain.SortByArea:      "a.area",
	domain.SortByBedrooms:  "a.bedrooms",
	domain.SortByBathrooms: "a.bathrooms",
}

// orderByClause строит ORDER BY из уже провалидированной спецификации.
// При неизвестном поле откатывается к дате создания, чтобы ORDER BY никогда
// не собирался из сырого пользовательского ввода.
func orderByClause(filters domain.ApartmentFilters) string {
	column, ok := sortColumns[filters.SortBy]
	if !ok {
		column = sortColumns[domain.SortByCreatedAt]
	}

	direction := "DESC"
	if strings.EqualFold(filters.SortDirection, domain.SortAsc) {
		direction = "ASC"
	}

	return fmt.Sprintf("ORDER BY %s %s", column, direction)
}
