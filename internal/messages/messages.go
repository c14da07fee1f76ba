// Package messages holds every user-facing string in one place.
package messages

const (
	MsgGroupOnly    = "❌ Эта команда работает только в групповых чатах."
	MsgNotAdmin     = "❌ У вас нет прав администратора."
	MsgBotCantBan   = "❌ У меня нет прав на блокировку пользователей."
	MsgBotCantMute  = "❌ У меня нет прав на ограничение пользователей."
	MsgBotCantMod   = "❌ У меня нет прав на модерацию пользователей."
	MsgAdminsOnly   = "❌ Только администраторы"
	MsgCallbackFail = "❌ Ошибка данных"

	MsgTargetHint     = "❌ Укажите пользователя.\nОтветьте на сообщение или укажите @username/ID"
	MsgTargetHintWarn = "❌ Укажите пользователя.\nОтветьте на сообщение или: /warn @username причина"

	MsgCannotSelf  = "❌ Вы не можете %s себя."
	MsgCannotBot   = "❌ Вы не можете %s меня."
	MsgCannotAdmin = "❌ Нельзя %s администратора."

	MsgMuteTooShort = "❌ Минимальное время мута — 30 секунд."

	ActionBan        = "🚫 <b>Бан</b>"
	ActionMute       = "🔇 <b>Мут</b>"
	ActionKick       = "👢 <b>Кик</b>"
	ActionWarnBan    = "🚫 <b>Бан по варнам</b>"
	ActionSpamMute   = "🔇 <b>Авто-мут за спам</b>"
	MsgUnbanDone     = "✅ <b>Разбан</b>\n👤 Пользователь: %s"
	MsgUnmuteDone    = "🔊 <b>Мут снят</b>\n👤 Пользователь: %s"
	MsgUserLine     = "\n👤 Пользователь: %s"
	MsgDurationLine = "\n⏱ Срок: %s"
	MsgReasonLine   = "\n📝 Причина: %s"

	MsgBanFail    = "❌ Ошибка при бане: %s"
	MsgUnbanFail  = "❌ Ошибка при разбане: %s"
	MsgMuteFail   = "❌ Ошибка при муте: %s"
	MsgUnmuteFail = "❌ Ошибка при снятии мута: %s"
	MsgKickFail   = "❌ Ошибка при кике: %s"
	MsgWarnFail   = "❌ Не удалось выдать предупреждение."

	MsgWarnHeader    = "⚠️ <b>Предупреждение</b>\n👤 Пользователь: %s\n📊 Варнов: %d/%d"
	MsgWarnNextIsBan = "\n\n⚡ <i>Следующий варн — бан!</i>"
	MsgWarnBanReason = "\n📝 Причина: достигнут лимит предупреждений"
	MsgWarnsRemoved  = "✅ <b>Варны сняты</b>\n👤 Пользователь: %s\n🗑 %s"
	MsgNoWarns       = "ℹ️ У пользователя %s нет варнов."
	MsgWarnsStatus   = "📊 <b>Варны пользователя</b>\n👤 %s\n⚠️ Варнов: %d/%d"

	BtnUnban  = "🔓 Разбанить"
	BtnUnmute = "🔊 Размутить"

	MsgUnbanned = "✅ Пользователь разбанен"
	MsgUnmuted  = "✅ Мут снят"

	MsgUnbannedSuffix = "\n\n✅ <i>Разбанен</i>"
	MsgUnmutedSuffix  = "\n\n✅ <i>Мут снят</i>"

	MsgRulesHeader = "📜 <b>Правила чата</b>\n\n%s"
	MsgRulesUnset  = "📜 Правила чата не заданы."

	MsgReportHeader     = "🚨 <b>Новый репорт</b>\n\n📍 Чат: %s\n👤 Отправил: %s"
	MsgReportTarget     = "\n⚠️ На пользователя: %s"
	MsgReportComment    = "\n💬 Комментарий: %s"
	MsgReportText       = "\n💬 Сообщение: %s"
	MsgReportNoMessage  = "\n\n<i>Репорт без указания сообщения</i>"
	MsgReportForwarded  = "\n\nСообщение ниже:"
	MsgReportSent       = "✅ Репорт отправлен администратору."
	MsgReportFail       = "❌ Не удалось отправить репорт. Возможно, администратор заблокировал бота."
	MsgBotNotActivated  = "❌ Бот не активирован в этом чате."
	MsgChatActivated    = "✅ Бот активирован. Настройки доступны владельцу."
	MsgChatDeactivated  = "✅ Бот деактивирован в этом чате."
	MsgFilterNotice     = "🗑 <b>Удалено по фильтру</b>\n\n📍 Чат: %s\n👤 Пользователь: %s\n💬 Сообщение: %s"
	MsgStatsReport      = "📊 <b>Статистика чата</b>\n💬 Сообщений за 7 дней: %d\n👥 Участников: %d"
	MsgChatClosedSuffix = "\n\n<i>[Чат отключён на %d сек. для предотвращения спама от ботов]</i>"

	MsgCheckHeader   = "🔍 <b>Проверка бота</b>"
	MsgCheckChatLine = "\n📍 Чат: %s"
	MsgCheckActive   = "\n✅ Бот активирован в этом чате."
	MsgCheckRestrict = "\n%s Право ограничивать пользователей"
	MsgCheckDelete   = "\n%s Право удалять сообщения"

	MsgUnknownTitle = "Без названия"
	MsgUnknownUser  = "Неизвестно"
)
