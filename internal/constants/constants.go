package constants

// Dialog States
// Состояния диалогов
const (
	STATE_IDLE = "idle"

	// Ввод периода отчётов
	STATE_REPORT_PERIOD_FROM = "report_period_from"
	STATE_REPORT_PERIOD_TO   = "report_period_to"

	// Настройки
	STATE_SETTINGS_MENU             = "settings_menu"
	STATE_SETTINGS_YANDEX_PERCENT   = "settings_yandex_percent"
	STATE_SETTINGS_COST_PLAN_MONTH  = "settings_cost_plan_month"
	STATE_SETTINGS_COST_PLAN_VALUE  = "settings_cost_plan_value"
	STATE_SETTINGS_POSITION_EMP     = "settings_position_employee"
	STATE_SETTINGS_POSITION_NAME    = "settings_position_name"
	STATE_SETTINGS_COMMISSION_VALUE = "settings_commission_value"
)

// Callback Data Prefixes
// Префиксы данных обратного вызова
const (
	CALLBACK_REPORT_REVENUE      = "report_revenue"
	CALLBACK_REPORT_SALARY       = "report_salary"
	CALLBACK_REPORT_SALARY_XLSX  = "report_salary_xlsx"
	CALLBACK_REPORT_PURCHASES    = "report_purchases"
	CALLBACK_REPORT_CONSOLIDATED = "report_consolidated"
	CALLBACK_SYNC_FINTABLO       = "sync_fintablo"
	CALLBACK_FILL_FOT_SHEET      = "fill_fot_sheet"
	CALLBACK_SETTINGS            = "settings"
	CALLBACK_SETTINGS_YANDEX     = "settings_yandex"
	CALLBACK_SETTINGS_COST_PLAN  = "settings_cost_plan"
	CALLBACK_PERIOD_TODAY        = "period_today"
	CALLBACK_PERIOD_YESTERDAY    = "period_yesterday"
	CALLBACK_PERIOD_MONTH        = "period_month"
	CALLBACK_PERIOD_CUSTOM       = "period_custom"
	CALLBACK_MAIN_MENU           = "main_menu"
)

// Сегменты выручки
const (
	SEGMENT_BAR     = "bar"
	SEGMENT_KITCHEN = "kitchen"
)

// Метки мест приготовления из iiko (сравнение без учёта регистра)
var (
	BarCookingPlaces     = map[string]bool{"бар": true}
	KitchenCookingPlaces = map[string]bool{"кухня": true, "кухня-пицца": true, "пицца": true}
)

// Подстрока типа оплаты доставки Яндекс (сравнение без учёта регистра)
const YandexPaymentMarker = "яндекс.оплата"

// Тип оплаты, исключаемый из выручки полностью
const UnpaidPaymentType = "(без оплаты)"

// Типы оплат, учитываемые в выручке бара и кухни
var AllowedPayTypes = map[string]bool{
	"Наличные":               true,
	"Оплата картой Сбербанк": true,
}

// Типы оплат приложения (канал LoyalHub)
var AppPayTypes = map[string]bool{
	"Оплата в приложении (Loyalhub)": true,
	"Проведенная оплата (LoyalHub)":  true,
}

// Типы оплат, запрашиваемые у iiko в OLAP-отчёте продаж
var RequestedPayTypes = []string{
	"Наличные",
	"Оплата в приложении (Loyalhub)",
	"Проведенная оплата (LoyalHub)",
	"Оплата картой при получении (Loyalhub)",
	"Оплата картой Сбербанк",
	"Яндекс.оплата",
}

// Категории блюд, учитываемые в выручке бара.
// Пустая категория (нет значения в отчёте) тоже допускается.
var BarAllowedCategories = map[string]bool{
	"Батончики":            true,
	"Выпечка":              true,
	"Горячие напитки":      true,
	"Добавки":              true,
	"Завтраки":             true,
	"Закуски":              true,
	"Кофе":                 true,
	"Лимонады":             true,
	"Обучение ":            true,
	"Персонал":             true,
	"Пиво":                 true,
	"Пицца":                true,
	"Пицца Яндекс":         true,
	"Растительное молоко":  true,
	"Реализация":           true,
	"Салаты":               true,
	"Свежевыжатые соки":    true,
	"Соус":                 true,
	"Супы":                 true,
	"ТМЦ":                  true,
	"Холодные напитки":     true,
	"ЯНДЕКС":               true,
}

// Категории блюд, учитываемые в выручке кухни и приложения.
var KitchenAllowedCategories = map[string]bool{
	"Выпечка":             true,
	"Горячие напитки":     true,
	"Добавки":             true,
	"Завтраки":            true,
	"Закуски":             true,
	"Кофе":                true,
	"Лимонады":            true,
	"Персонал":            true,
	"Пиво":                true,
	"Пицца":               true,
	"Пицца Яндекс":        true,
	"Растительное молоко": true,
	"Реализация":          true,
	"Салаты":              true,
	"Соус":                true,
	"Супы":                true,
	"Холодные напитки":    true,
	"ЯНДЕКС":              true,
}

// Служебные категории блюд, исключаемые из выручки и себестоимости
var ExcludedDishCategories = map[string]bool{
	"Модификаторы":        true,
	"Питание персонала":   true,
	"Расходные материалы": true,
}

// Названия складов закупок и тип счёта для сверки закупок
var (
	PurchaseStoreNames = []string{
		"Бар Пиццерия",
		"Кухня Пиццерия",
		"ТМЦ Пиццерия",
		"Хоз. товары Пиццерия",
	}
	PurchaseAccountTypes = []string{"INVENTORY_ASSETS"}
)

// Маркеры складов для распределения списаний по сегментам
var (
	BarStoreMarker     = "бар"
	KitchenStoreMarker = "кух"
	PizzaStoreMarker   = "пицц"
	// Списания на учредителей в продуктовые итоги не входят
	FounderStoreMarker = "учредител"
)

// Идентификаторы статей и направлений FinTablo
const (
	FT_CATEGORY_BAR                = 27315
	FT_CATEGORY_KITCHEN            = 27314
	FT_CATEGORY_APP                = 27316
	FT_CATEGORY_YANDEX             = 27317
	FT_CATEGORY_PRODUCTION         = 27318
	FT_CATEGORY_COST               = 27319
	FT_CATEGORY_WRITE_OFF_PRODUCTS = 27321

	FT_DIRECTION_KLIN       = 148270
	FT_DIRECTION_PRODUCTION = 159851
)

// ID сохранённого OLAP-отчёта iiko с заказами (CloseTime, DishDiscountSumInt)
const PresetOrdersReportID = "9555cc88-492c-48f6-9a09-629346af5bde"

// Комиссия Яндекс-доставки по умолчанию, процентов
const DefaultYandexCommissionPercent = 36.5

// Ключи таблицы settings
const (
	SETTING_YANDEX_COMMISSION = "yandex_commission"
)

// Типы оплаты труда
const (
	PAYMENT_TYPE_HOURLY    = "hourly"
	PAYMENT_TYPE_PER_SHIFT = "per_shift"
	PAYMENT_TYPE_MONTHLY   = "monthly"
)

// Типы комиссии
const (
	COMMISSION_TYPE_SALES    = "sales"
	COMMISSION_TYPE_WRITEOFF = "writeoff"
)

// Подразделения для группировки ФОТ
var Departments = []string{"Кондитерский", "Кухня", "Зал", "Админ"}

// Расписание фоновых задач
const (
	RevenueSyncHour   = 3
	RevenueSyncMinute = 20
	FotSheetFillHour  = 12
)

// General Text Messages
// Общие текстовые сообщения
const (
	AccessDeniedMessage = "❌ У вас нет прав доступа для этого действия."
	DateInputHint       = "Введите дату в формате ДД.ММ.ГГГГ, например 01.08.2026."
)
