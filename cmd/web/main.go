// Сервис подбора субаренды: листинги, профили арендаторов, матчинг и рекомендации.
// Конфигурация берется из CONFIG_PATH (по умолчанию config/config.yaml)
// или из DATABASE_URL и сопутствующих переменных окружения.

package main

import "sublet_backend/internal/app"

func main() {
	app.Run()
}
