package engine

import "github.com/sosedi-ryadom/sosedibot/bot/model"

// Menu button labels. Dispatch matches these by exact string equality,
// so they must stay byte-identical to what the keyboards send.
const (
	LabelLocation   = "📍 Определить местоположение"
	LabelNeedHelp   = "🙋 Мне нужна помощь"
	LabelCanHelp    = "🤝 Я могу оказать помощь"
	LabelMyActivity = "📊 Мои активность"
	LabelDelete     = "🗑️ Удалить запросы"
	LabelFindHelp   = "👥 Найти помощь рядом"
	LabelMainMenu   = "🔙 Главное меню"
)

const (
	textWelcome = "👋 Добро пожаловать в бот «СоседиРядом»!\n\n" +
		"Я помогу найти помощь или стать волонтером в вашем районе.\n\n" +
		"Выберите действие:"

	textLocationSaved = "✅ Отлично! Местоположение сохранено. Теперь я могу искать помощь в вашем районе!"

	textPickCategoryNeed = "🙋 Выберите категорию помощи:"
	textPickCategoryCan  = "🤝 Выберите категорию, в которой можете помочь:"

	textAskDetailsNeed = "💬 Опишите подробнее, какая именно помощь вам нужна:"
	textAskDetailsCan  = "💬 Опишите, как именно вы можете помочь:"

	textRequestSaved     = "✅ Ваш запрос помощи сохранен!\n\n📝 Детали: %s"
	textVolunteersFound  = "\n\n🎉 Нашлось %d волонтеров готовых помочь!"
	textNoVolunteersYet  = "\n\nКак только волонтеры появятся рядом, я вас уведомлю!"
	textOfferSaved       = "✅ Вы зарегистрированы как волонтер!\n\n📝 Детали: %s"
	textRequestsFound    = "\n\n🎉 Нашлось %d запросов помощи рядом!"
	textThanksForHelping = "\n\nСпасибо за готовность помогать! ❤️"

	textActivityHeader  = "📊 Ваша активность:\n\n"
	textActivityReqHdr  = "🙋 Мои запросы помощи:\n"
	textActivityOffHdr  = "\n🤝 Мои предложения помощи:\n"
	textActivityEmpty   = "У вас пока нет активных запросов или предложений."
	textNearbyEmpty     = "😔 Поблизости пока нет запросов помощи."
	textNearbyHeader    = "🎉 Найдено запросов помощи рядом: %d\n\n"
	textNearbyFooter    = "Хотите помочь кому-то из них? Нажмите '🤝 Я могу оказать помощь'"
	textDeleteEmpty     = "❌ У вас нет активных запросов или предложений для удаления."
	textDeletePrompt    = "🗑️ Выберите что хотите удалить:"
	textNavigationHint  = "Используйте кнопки для навигации 👇"
	textPersistFailed   = "⚠️ Не получилось сохранить данные. Попробуйте ещё раз."
	textLookupFailed    = "⚠️ Не получилось загрузить данные. Попробуйте ещё раз."
)

// categoryByLabel maps button labels to stored category tags. An input
// absent from this map is not a category selection.
var categoryByLabel = map[string]model.Category{
	"🛒 Сходить в магазин":  model.CategoryShopping,
	"💊 Купить лекарства":   model.CategoryPharmacy,
	"🔧 Мелкий ремонт":      model.CategoryRepairs,
	"💬 Пообщаться":         model.CategoryCommunication,
	"🐕 Выгулять собаку":    model.CategoryWalk,
	"📦 Доставить продукты": model.CategoryDelivery,
	"❓ Другое":              model.CategoryOther,
}

func mainMenuKeyboard() *Keyboard {
	return &Keyboard{
		OneTime: true,
		Rows: [][]Button{
			{{Label: LabelLocation, RequestLocation: true}},
			{{Label: LabelNeedHelp}, {Label: LabelCanHelp}},
			{{Label: LabelMyActivity}, {Label: LabelDelete}},
			{{Label: LabelFindHelp}},
		},
	}
}

func categoryKeyboard() *Keyboard {
	return &Keyboard{
		OneTime: true,
		Rows: [][]Button{
			{{Label: "🛒 Сходить в магазин"}, {Label: "💊 Купить лекарства"}},
			{{Label: "🔧 Мелкий ремонт"}, {Label: "💬 Пообщаться"}},
			{{Label: "🐕 Выгулять собаку"}, {Label: "📦 Доставить продукты"}},
			{{Label: "❓ Другое"}, {Label: LabelMainMenu}},
		},
	}
}

func backToMenuKeyboard() *Keyboard {
	return &Keyboard{
		OneTime: true,
		Rows:    [][]Button{{{Label: LabelMainMenu}}},
	}
}
