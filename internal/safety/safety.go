// Package safety проверяет сгенерированное меню на соответствие заявленным
// физическим ограничениям пользователя.
package safety

import (
	"fmt"
	"strings"

	"github.com/fitforge/workout-api/internal/models"
)

// Result — итог проверки. Menu возвращается без изменений даже при
// нарушениях: фильтр сегодня только сообщает о проблемах, замену
// упражнений не выполняет. Вызывающий код не должен полагаться на то,
// что меню отличается от входного.
type Result struct {
	Violations []string
	Menu       *models.Menu
}

// restrictionKeywords — запрещённые фрагменты названий упражнений основного
// блока для каждого ограничения. Набор правил расширяемый.
var restrictionKeywords = map[string][]string{
	"knee": {"ジャンプ", "ボックス"},
}

// restrictionLabels — название части тела для текста нарушения.
var restrictionLabels = map[string]string{
	"knee": "膝",
}

// Check сверяет основной блок меню с ограничениями из параметров и
// накапливает нарушение на каждое совпадение.
func Check(menu *models.Menu, params models.GenerateParams) Result {
	var violations []string

	for _, restriction := range params.Restrictions {
		keywords, ok := restrictionKeywords[restriction]
		if !ok {
			continue
		}
		for _, ex := range menu.Main {
			for _, keyword := range keywords {
				if strings.Contains(ex.Name, keyword) {
					violations = append(violations,
						fmt.Sprintf("%sの制約に違反: %q", restrictionLabels[restriction], ex.Name))
					break
				}
			}
		}
	}

	return Result{
		Violations: violations,
		Menu:       menu,
	}
}
