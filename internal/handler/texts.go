package handler

// User-facing texts
const (
	textStart            = "👋 Привет! Я помогу тебе учитывать личные расходы.\n\n💵 Просто введи сумму (например, 250) — и выбери категорию."
	textMainMenu         = "📋 Главное меню:\n💵 Просто введи сумму (например, 250) — и выбери категорию."
	textChooseCategory   = "📂 Выберите категорию:"
	textCustomCategory   = "✏️ Введите название своей категории расходов:\n\n💡 Например: Такси, Кафе, Кино, Подарок и т.д."
	textExpenseAdded     = "✅ Расход %s ₽ добавлен в категорию «%s»."
	textNoAmount         = "⚠️ Сначала введите сумму расхода!"
	textStatsPeriod      = "📊 Выберите период, за который показать статистику:"
	textResetPeriod      = "🗑 Выберите период, за который очистить статистику:"
	textNoChartData      = "📉 Нет данных для диаграммы."
	textStatsCleared     = "✅ Статистика за выбранный период очищена."
	textCategoryTooLong  = "❌ Название категории слишком длинное! Введите до 50 символов:"
	textCategoryTooShort = "❌ Название категории слишком короткое! Введите минимум 2 символа:"
	textZeroAmount       = "❌ Сумма не должна быть равной нулю! Введите другую сумму:"
	textConfirmReset     = "⚠️ Вы уверены, что хотите очистить статистику за %s?\n\n❌ Это действие нельзя отменить!\n📊 Все расходы за этот период будут удалены."
	textReportMenu       = "📄 Выберите период для отчета (PDF):"
	textEnterStartDate   = "📅 Введите начальную дату в формате ДД.ММ.ГГГГ\nНапример: 01.12.2024"
	textEnterEndDate     = "📅 Введите конечную дату в формате ДД.ММ.ГГГГ\nНапример: 31.12.2024"
	textInvalidDate      = "❌ Неверный формат даты! Введите дату в формате ДД.ММ.ГГГГ:"
	textDateRangeError   = "❌ Конечная дата не может быть раньше начальной! Введите конечную дату еще раз:"
	textGeneratingReport = "⏳ Генерирую отчет..."
	textReportSent       = "✅ Отчет отправлен!"
	textNoDataReport     = "📭 За выбранный период нет данных для отчета."
	textError            = "❌ Произошла ошибка. Попробуйте еще раз."
	textChartCaption     = "📊 Диаграмма расходов за %s"
)
