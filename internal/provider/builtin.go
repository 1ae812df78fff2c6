package provider

import (
	"context"
	"fmt"
	"math"

	"github.com/fitforge/workout-api/internal/models"
)

// Builtin — детерминированный встроенный генератор. Собирает меню из
// фиксированного набора упражнений с учётом заявленных ограничений,
// внешних вызовов не делает.
type Builtin struct{}

// NewBuiltin создает встроенного провайдера.
func NewBuiltin() *Builtin {
	return &Builtin{}
}

var goalTitles = map[string]string{
	"strength":    "筋力アップ",
	"weightLoss":  "脂肪燃焼",
	"endurance":   "持久力向上",
	"performance": "パフォーマンス強化",
}

// Generate собирает меню тренировки. Ошибок у встроенного провайдера нет,
// кроме отмены контекста.
func (b *Builtin) Generate(ctx context.Context, params models.GenerateParams) (*models.Menu, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	location := "自宅"
	if params.Location == "gym" {
		location = "ジム"
	}

	menu := &models.Menu{
		SchemaVersion: models.MenuSchemaVersion,
		Title:         fmt.Sprintf("%sワークアウト（%d分）", goalTitles[params.Goal], params.Duration),
		Description: fmt.Sprintf("%sで行う%d分のワークアウトです。週%d回を目安に。",
			location, params.Duration, params.Frequency),
		Warmup:          b.warmup(params),
		Main:            b.main(params),
		Cooldown:        b.cooldown(),
		TotalTime:       params.Duration,
		CalorieEstimate: int(math.Round(float64(params.Duration) * 5 * 1.2)),
		Warnings:        b.warnings(params),
	}
	return menu, nil
}

func (b *Builtin) warmup(params models.GenerateParams) []models.Exercise {
	warmup := []models.Exercise{
		{Name: "マーチング", Sets: 1, Reps: "2分", Rest: "0秒", Notes: "ゆっくり心拍数を上げる"},
	}
	if !params.HasRestriction("knee") {
		warmup = append(warmup, models.Exercise{
			Name: "ボディウェイトスクワット", Sets: 1, Reps: "10回", Rest: "0秒", Notes: "浅めで",
		})
	}
	return warmup
}

func (b *Builtin) main(params models.GenerateParams) []models.Exercise {
	var exercises []models.Exercise

	if !params.HasRestriction("shoulder") {
		exercises = append(exercises, models.Exercise{
			Name: "プッシュアップ", Sets: 3, Reps: "10-12回", Rest: "60秒", Notes: "膝つきOK",
		})
	}

	if !params.HasRestriction("knee") {
		exercises = append(exercises, models.Exercise{
			Name: "スクワット", Sets: 3, Reps: "12-15回", Rest: "60秒",
		})
	} else {
		exercises = append(exercises, models.Exercise{
			Name: "グルートブリッジ", Sets: 3, Reps: "15回", Rest: "45秒", Notes: "膝に優しい",
		})
	}

	if !params.HasRestriction("back") {
		exercises = append(exercises, models.Exercise{
			Name: "プランク", Sets: 3, Reps: "30秒", Rest: "30秒",
		})
	} else {
		exercises = append(exercises, models.Exercise{
			Name: "デッドバグ", Sets: 3, Reps: "10回（各側）", Rest: "30秒", Notes: "腰に優しい",
		})
	}

	return exercises
}

func (b *Builtin) cooldown() []models.Exercise {
	return []models.Exercise{
		{Name: "ストレッチ", Sets: 1, Reps: "3分", Rest: "0秒", Notes: "全身をほぐす"},
		{Name: "深呼吸", Sets: 1, Reps: "5回", Rest: "0秒"},
	}
}

func (b *Builtin) warnings(params models.GenerateParams) []string {
	warnings := []string{
		"⚠️ このメニューは参考情報です。医療アドバイスではありません。",
		"⚠️ 痛みが出たらすぐに中止してください。",
	}
	if params.HasRestriction("knee") {
		warnings = append(warnings, "🦵 膝に配慮したメニューですが、違和感があれば中止してください。")
	}
	if params.HasRestriction("back") {
		warnings = append(warnings, "🔙 腰に配慮したメニューですが、痛みが出たら中止してください。")
	}
	return warnings
}
