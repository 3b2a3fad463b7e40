// Package testinfra поднимает внешние зависимости для интеграционных тестов
// через testcontainers. Все файлы собираются только с тегом integration:
//
//	go test -tags integration ./internal/repositories/...
package testinfra
