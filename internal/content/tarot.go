package content

import "astrobot/internal/model"

func card(id string, title, keyword, meaning [3]string) model.TarotCard {
	pack := func(v [3]string) map[model.Lang]string {
		return map[model.Lang]string{model.LangEN: v[0], model.LangRU: v[1], model.LangES: v[2]}
	}
	return model.TarotCard{
		ID:      id,
		Image:   "tarot/" + id + ".jpg",
		Title:   pack(title),
		Keyword: pack(keyword),
		Meaning: pack(meaning),
	}
}

var builtinCards = []model.TarotCard{
	card("fool",
		[3]string{"The Fool", "Шут", "El Loco"},
		[3]string{"new beginnings", "новое начало", "nuevos comienzos"},
		[3]string{
			"A light step into the unknown. Allow yourself to try something without a perfect plan.",
			"Лёгкий шаг в неизвестность. Позвольте себе попробовать что-то без идеального плана.",
			"Un paso ligero hacia lo desconocido. Permítete probar algo sin un plan perfecto.",
		}),
	card("magician",
		[3]string{"The Magician", "Маг", "El Mago"},
		[3]string{"will and skill", "воля и мастерство", "voluntad y destreza"},
		[3]string{
			"Everything you need is already at hand. Focus your attention and act.",
			"Всё необходимое уже под рукой. Сосредоточьте внимание и действуйте.",
			"Todo lo que necesitas ya está a tu alcance. Concentra tu atención y actúa.",
		}),
	card("high_priestess",
		[3]string{"The High Priestess", "Верховная Жрица", "La Sacerdotisa"},
		[3]string{"intuition", "интуиция", "intuición"},
		[3]string{
			"The quiet voice inside knows the answer. Give it a little silence.",
			"Тихий внутренний голос знает ответ. Дайте ему немного тишины.",
			"La voz interior tranquila conoce la respuesta. Dale un poco de silencio.",
		}),
	card("empress",
		[3]string{"The Empress", "Императрица", "La Emperatriz"},
		[3]string{"abundance", "изобилие", "abundancia"},
		[3]string{
			"A time of growth and care. What you nurture now will bloom.",
			"Время роста и заботы. То, что вы взращиваете сейчас, расцветёт.",
			"Tiempo de crecimiento y cuidado. Lo que cuides ahora florecerá.",
		}),
	card("emperor",
		[3]string{"The Emperor", "Император", "El Emperador"},
		[3]string{"structure", "структура", "estructura"},
		[3]string{
			"Clear rules and a steady hand bring calm. Take responsibility for your course.",
			"Ясные правила и твёрдая рука приносят спокойствие. Возьмите курс в свои руки.",
			"Reglas claras y mano firme traen calma. Hazte cargo de tu rumbo.",
		}),
	card("lovers",
		[3]string{"The Lovers", "Влюблённые", "Los Enamorados"},
		[3]string{"choice of the heart", "выбор сердцем", "elección del corazón"},
		[3]string{
			"Harmony and mutual understanding. Choose what resonates with your values.",
			"Гармония и взаимопонимание. Выбирайте то, что созвучно вашим ценностям.",
			"Armonía y comprensión mutua. Elige lo que resuena con tus valores.",
		}),
	card("chariot",
		[3]string{"The Chariot", "Колесница", "El Carro"},
		[3]string{"momentum", "движение вперёд", "impulso"},
		[3]string{
			"Determination moves things forward. Hold the reins and keep your direction.",
			"Решимость двигает дела вперёд. Держите поводья и сохраняйте направление.",
			"La determinación hace avanzar las cosas. Sujeta las riendas y mantén el rumbo.",
		}),
	card("strength",
		[3]string{"Strength", "Сила", "La Fuerza"},
		[3]string{"gentle power", "мягкая сила", "fuerza serena"},
		[3]string{
			"Patience and kindness are stronger than pressure. Trust your inner steadiness.",
			"Терпение и доброта сильнее давления. Доверьтесь своей внутренней устойчивости.",
			"La paciencia y la bondad son más fuertes que la presión. Confía en tu firmeza interior.",
		}),
	card("hermit",
		[3]string{"The Hermit", "Отшельник", "El Ermitaño"},
		[3]string{"reflection", "размышление", "reflexión"},
		[3]string{
			"A pause brings clarity. Step back from the noise and look within.",
			"Пауза приносит ясность. Отойдите от шума и загляните внутрь себя.",
			"Una pausa trae claridad. Aléjate del ruido y mira hacia dentro.",
		}),
	card("wheel_of_fortune",
		[3]string{"Wheel of Fortune", "Колесо Фортуны", "La Rueda de la Fortuna"},
		[3]string{"turning point", "поворот судьбы", "punto de giro"},
		[3]string{
			"Circumstances are shifting in your favour. Be ready to catch the chance.",
			"Обстоятельства меняются в вашу пользу. Будьте готовы поймать шанс.",
			"Las circunstancias cambian a tu favor. Prepárate para aprovechar la ocasión.",
		}),
	card("temperance",
		[3]string{"Temperance", "Умеренность", "La Templanza"},
		[3]string{"balance", "баланс", "equilibrio"},
		[3]string{
			"The middle path works best. Mix effort and rest in equal measure.",
			"Лучше всего работает золотая середина. Сочетайте усилия и отдых в равной мере.",
			"El término medio funciona mejor. Combina esfuerzo y descanso a partes iguales.",
		}),
	card("star",
		[3]string{"The Star", "Звезда", "La Estrella"},
		[3]string{"hope", "надежда", "esperanza"},
		[3]string{
			"Hope and inspiration return. A good time to make a wish and believe in it.",
			"Возвращаются надежда и вдохновение. Хорошее время загадать желание и поверить в него.",
			"Vuelven la esperanza y la inspiración. Buen momento para pedir un deseo y creer en él.",
		}),
	card("sun",
		[3]string{"The Sun", "Солнце", "El Sol"},
		[3]string{"joy and success", "радость и успех", "alegría y éxito"},
		[3]string{
			"Success, joy and warmth. The day favours initiatives and open hearts.",
			"Успех, радость и тепло. День благоприятен для инициатив и открытых сердец.",
			"Éxito, alegría y calidez. El día favorece las iniciativas y los corazones abiertos.",
		}),
	card("world",
		[3]string{"The World", "Мир", "El Mundo"},
		[3]string{"completion", "завершение", "culminación"},
		[3]string{
			"A cycle closes with inner wholeness and peace. Celebrate how far you have come.",
			"Цикл завершается внутренней целостностью и покоем. Отметьте, как далеко вы продвинулись.",
			"Un ciclo se cierra con plenitud y paz interior. Celebra todo lo que has avanzado.",
		}),
}
