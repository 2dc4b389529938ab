package content

import "astrobot/internal/model"

// Pools are index-compatible across languages: entry i of a category means
// the same thing in every language.
var builtinPools = map[model.Lang]map[Category][]string{
	model.LangEN: {
		CategoryMood: {
			"harmonious day",
			"dynamic and lively day",
			"calm and balanced day",
			"day of clarity and easy decisions",
			"soft and intuitive day",
			"day when many things align by themselves",
			"day with a good inner rhythm",
			"day suitable for small victories",
			"day that supports a fresh start",
		},
		CategorySeason: {
			"A cozy day to sum up small results.",
			"A good moment to gently organize your life.",
			"A day to slow down a little and feel your inner comfort.",
			"The atmosphere supports calm, warm interactions.",
			"It's a good time to tidy up space and thoughts.",
			"A day to finish what has been hanging for a while.",
			"Good for quiet rituals and personal pauses.",
		},
		CategoryLove: {
			"A good day to show care and attention.",
			"Soft conversations work better than sharp statements today.",
			"Harmony in relationships grows through small, sincere gestures.",
			"If there is tension, today it can be eased gently.",
			"For singles, this is a day to notice subtle signs from the world.",
			"Being a little warmer than usual will already change the atmosphere.",
		},
		CategoryWork: {
			"Today accuracy is more important than speed.",
			"Great for finishing small tasks and loose ends.",
			"Suitable for putting things in order and revising plans.",
			"It's better to think twice than to rush into action.",
			"Clarifying details today will save you energy later.",
			"Quiet, focused work will be more productive than multitasking.",
		},
		CategoryMoney: {
			"It's a suitable day to slightly cut impulsive purchases.",
			"Good time to review your recent expenses.",
			"Avoid big financial decisions, let ideas ripen a bit more.",
			"Small, thoughtful spending is better than big experiments.",
			"You may notice a small but pleasant opportunity or discount.",
		},
		CategoryHealth: {
			"It's useful to pause for breathing and a light stretch.",
			"A short walk will help you reset your state.",
			"Gentle care for the body will respond with more energy.",
			"Don't overload yourself, balance is more important today.",
			"Listening to your body will give you clear hints.",
		},
		CategoryAdvice: {
			"Don't try to do everything at once, choose the main things.",
			"Keep a calm pace, it will be optimal today.",
			"Pay attention to small details: they lead to important results.",
			"Trust your rhythm, it is more precise than it seems.",
			"Choose the simplest solution where possible.",
		},
		CategoryColor: {
			"olive", "soft blue", "warm beige", "emerald", "lavender",
			"deep green", "light grey", "pearl white", "terracotta",
		},
	},
	model.LangRU: {
		CategoryMood: {
			"гармоничный день",
			"динамичный и живой день",
			"спокойный и ровный день",
			"день ясности и лёгких решений",
			"мягкий и интуитивный день",
			"день, когда многое само складывается",
			"день с хорошим внутренним ритмом",
			"день для маленьких, но важных побед",
			"день, который поддерживает новое начало",
		},
		CategorySeason: {
			"Уютный день, чтобы подвести небольшие итоги.",
			"Хороший момент, чтобы мягко навести порядок в делах.",
			"День, когда хочется немного замедлиться и почувствовать комфорт.",
			"Атмосфера располагает к спокойному, тёплому общению.",
			"Подходит, чтобы разобрать пространство и мысли.",
			"День для завершения того, что давно тянется.",
			"Хорошее время для тихих личных ритуалов и пауз.",
		},
		CategoryLove: {
			"Подходящий день, чтобы проявить заботу и внимание.",
			"Мягкие слова сегодня работают лучше, чем резкие выводы.",
			"Гармония в отношениях растёт через простые, искренние жесты.",
			"Если была напряжённость, сегодня её можно сгладить.",
			"Для одиноких это день, когда стоит присмотреться к знакомым людям.",
			"Чуть больше тепла с вашей стороны уже меняет атмосферу.",
		},
		CategoryWork: {
			"Сегодня аккуратность важнее скорости.",
			"Подходит для завершения небольших задач.",
			"Хорошее время, чтобы разложить всё по полочкам.",
			"Лучше дважды обдумать шаг, чем спешить.",
			"Уточнение деталей сейчас сэкономит силы позже.",
			"Тихая, сосредоточенная работа будет особенно продуктивной.",
		},
		CategoryMoney: {
			"Сегодня стоит чуть сократить импульсивные покупки.",
			"Хороший день, чтобы взглянуть на недавние расходы.",
			"С крупными тратами лучше не спешить, пусть идея дозреет.",
			"Небольшие, осознанные траты предпочтительнее экспериментов.",
			"Можно заметить небольшой, но выгодный вариант или скидку.",
		},
		CategoryHealth: {
			"Полезно сделать паузу для дыхания и лёгкой разминки.",
			"Короткая прогулка поможет перезагрузиться.",
			"Мягкий режим и внимание к себе пойдут на пользу.",
			"Не перегружайте себя делами, важен баланс.",
			"Прислушиваясь к телу, вы поймёте, чего сейчас не хватает.",
		},
		CategoryAdvice: {
			"Не пытайтесь успеть всё, выберите главное.",
			"Сохраняйте спокойный темп, он сейчас оптимален.",
			"Обращайте внимание на мелочи: они приведут к важному.",
			"Доверьтесь своему внутреннему ритму.",
			"Выбирайте простое решение там, где это возможно.",
		},
		CategoryColor: {
			"оливковый", "нежно-голубой", "тёплый бежевый", "изумрудный",
			"лавандовый", "глубокий зелёный", "светло-серый",
			"жемчужно-белый", "терракотовый",
		},
	},
	model.LangES: {
		CategoryMood: {
			"día armonioso",
			"día dinámico y vivo",
			"día tranquilo y equilibrado",
			"día de claridad y decisiones sencillas",
			"día suave e intuitivo",
			"día en el que muchas cosas encajan solas",
			"día con buen ritmo interior",
			"día adecuado para pequeñas victorias",
			"día que apoya un nuevo comienzo",
		},
		CategorySeason: {
			"Un día acogedor para cerrar pequeños asuntos.",
			"Buen momento para ordenar con calma lo pendiente.",
			"Un día para bajar un poco el ritmo y sentirte cómodo.",
			"La atmósfera invita a interacciones cálidas y tranquilas.",
			"Es buen momento para ordenar espacio y pensamientos.",
			"Día para terminar lo que lleva tiempo esperando.",
			"Ideal para pequeños rituales personales y pausas.",
		},
		CategoryLove: {
			"Buen día para mostrar cariño y atención.",
			"Las palabras suaves funcionan mejor que las frases duras.",
			"La armonía en la pareja crece a través de gestos sinceros.",
			"Si había tensión, hoy se puede suavizar sin presión.",
			"Para quienes están solos, es un día para notar señales sutiles.",
			"Un poco más de calidez de tu parte ya cambia el ambiente.",
		},
		CategoryWork: {
			"Hoy la precisión es más importante que la velocidad.",
			"Buen día para cerrar tareas pequeñas.",
			"Ideal para poner orden y revisar planes.",
			"Mejor pensar dos veces que actuar con prisa.",
			"Aclarar detalles ahora ahorrará energía más adelante.",
			"El trabajo tranquilo y concentrado será más productivo.",
		},
		CategoryMoney: {
			"Es un buen día para reducir compras impulsivas.",
			"Momento adecuado para revisar tus gastos recientes.",
			"Evita decisiones financieras grandes, deja que la idea madure.",
			"Es mejor gastar poco pero con conciencia.",
			"Puedes encontrar una pequeña oportunidad o descuento agradable.",
		},
		CategoryHealth: {
			"Es útil hacer una pausa para respirar y estirarte un poco.",
			"Un paseo corto ayudará a reiniciar tu estado.",
			"El cuerpo responde bien al cuidado suave.",
			"No te sobrecargues, hoy es importante el equilibrio.",
			"Escuchar al cuerpo te dará pistas claras.",
		},
		CategoryAdvice: {
			"No intentes hacerlo todo a la vez, elige lo principal.",
			"Mantén un ritmo tranquilo, hoy es el mejor modo.",
			"Presta atención a los detalles pequeños: llevan a grandes resultados.",
			"Confía en tu propio ritmo interior.",
			"Elige la solución más sencilla cuando sea posible.",
		},
		CategoryColor: {
			"oliva", "azul suave", "beige cálido", "esmeralda",
			"lavanda", "verde profundo", "gris claro",
			"blanco perla", "terracota",
		},
	},
}

var builtinLabels = map[model.Lang]map[LabelKey]string{
	model.LangEN: {
		LabelTitle:        "horoscope for today",
		LabelTypeOfDay:    "Type of day",
		LabelSeasonalMood: "Seasonal mood",
		LabelLove:         "Love",
		LabelWork:         "Work",
		LabelMoney:        "Money",
		LabelHealth:       "Health",
		LabelAdvice:       "Advice",
		LabelNumberOfDay:  "Number of the day",
		LabelColorOfDay:   "Color of the day",
		LabelTarotDaily:   "Daily tarot card",
		LabelTarotWeekly:  "Weekly tarot card",
		LabelQuote:        "Quote of the day",
	},
	model.LangRU: {
		LabelTitle:        "гороскоп на сегодня",
		LabelTypeOfDay:    "Тип дня",
		LabelSeasonalMood: "Сезонное настроение",
		LabelLove:         "Любовь",
		LabelWork:         "Работа",
		LabelMoney:        "Деньги",
		LabelHealth:       "Здоровье",
		LabelAdvice:       "Совет",
		LabelNumberOfDay:  "Число дня",
		LabelColorOfDay:   "Цвет дня",
		LabelTarotDaily:   "Карта Таро дня",
		LabelTarotWeekly:  "Карта Таро недели",
		LabelQuote:        "Цитата дня",
	},
	model.LangES: {
		LabelTitle:        "horóscopo para hoy",
		LabelTypeOfDay:    "Tipo de día",
		LabelSeasonalMood: "Ánimo de la estación",
		LabelLove:         "Amor",
		LabelWork:         "Trabajo",
		LabelMoney:        "Dinero",
		LabelHealth:       "Salud",
		LabelAdvice:       "Consejo",
		LabelNumberOfDay:  "Número del día",
		LabelColorOfDay:   "Color del día",
		LabelTarotDaily:   "Carta del tarot del día",
		LabelTarotWeekly:  "Carta del tarot de la semana",
		LabelQuote:        "Cita del día",
	},
}

// Monday first.
var builtinWeekdays = map[model.Lang][7]string{
	model.LangEN: {"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},
	model.LangRU: {"Понедельник", "Вторник", "Среда", "Четверг", "Пятница", "Суббота", "Воскресенье"},
	model.LangES: {"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"},
}

type signMeta struct {
	emoji string
	names map[model.Lang]string
}

var builtinSigns = map[model.Sign]signMeta{
	model.Aries:       {"🐏", map[model.Lang]string{model.LangEN: "Aries", model.LangRU: "Овен", model.LangES: "Aries"}},
	model.Taurus:      {"🐂", map[model.Lang]string{model.LangEN: "Taurus", model.LangRU: "Телец", model.LangES: "Tauro"}},
	model.Gemini:      {"👥", map[model.Lang]string{model.LangEN: "Gemini", model.LangRU: "Близнецы", model.LangES: "Géminis"}},
	model.Cancer:      {"🐚", map[model.Lang]string{model.LangEN: "Cancer", model.LangRU: "Рак", model.LangES: "Cáncer"}},
	model.Leo:         {"🦁", map[model.Lang]string{model.LangEN: "Leo", model.LangRU: "Лев", model.LangES: "Leo"}},
	model.Virgo:       {"🌾", map[model.Lang]string{model.LangEN: "Virgo", model.LangRU: "Дева", model.LangES: "Virgo"}},
	model.Libra:       {"⚖️", map[model.Lang]string{model.LangEN: "Libra", model.LangRU: "Весы", model.LangES: "Libra"}},
	model.Scorpio:     {"🦂", map[model.Lang]string{model.LangEN: "Scorpio", model.LangRU: "Скорпион", model.LangES: "Escorpio"}},
	model.Sagittarius: {"🏹", map[model.Lang]string{model.LangEN: "Sagittarius", model.LangRU: "Стрелец", model.LangES: "Sagitario"}},
	model.Capricorn:   {"🐐", map[model.Lang]string{model.LangEN: "Capricorn", model.LangRU: "Козерог", model.LangES: "Capricornio"}},
	model.Aquarius:    {"🌊", map[model.Lang]string{model.LangEN: "Aquarius", model.LangRU: "Водолей", model.LangES: "Acuario"}},
	model.Pisces:      {"🐟", map[model.Lang]string{model.LangEN: "Pisces", model.LangRU: "Рыбы", model.LangES: "Piscis"}},
}
