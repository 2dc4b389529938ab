package quotes

import "astrobot/internal/model"

type poolQuote struct {
	id     string
	author map[model.Lang]string
	text   map[model.Lang]string
}

func q(id string, author, text [3]string) poolQuote {
	pack := func(v [3]string) map[model.Lang]string {
		return map[model.Lang]string{model.LangEN: v[0], model.LangRU: v[1], model.LangES: v[2]}
	}
	return poolQuote{id: id, author: pack(author), text: pack(text)}
}

// fallbackPool is used when the text source is off or fails.
var fallbackPool = []poolQuote{
	q("seneca_dare",
		[3]string{"Seneca", "Сенека", "Séneca"},
		[3]string{
			"It is not because things are difficult that we do not dare; it is because we do not dare that they are difficult.",
			"Не потому мы мало решаемся, что вещи трудны; вещи трудны, потому что мы мало решаемся.",
			"No es porque las cosas sean difíciles que no nos atrevemos; es porque no nos atrevemos que son difíciles.",
		}),
	q("confucius_slowly",
		[3]string{"Confucius", "Конфуций", "Confucio"},
		[3]string{
			"It does not matter how slowly you go as long as you do not stop.",
			"Пока не остановишься, неважно, как медленно ты идёшь.",
			"No importa lo lento que vayas mientras no te detengas.",
		}),
	q("einstein_bicycle",
		[3]string{"Einstein", "Эйнштейн", "Einstein"},
		[3]string{
			"Life is like riding a bicycle: to keep your balance you must keep moving.",
			"Жизнь как езда на велосипеде: чтобы сохранить равновесие, нужно двигаться.",
			"La vida es como montar en bicicleta: para mantener el equilibrio hay que seguir avanzando.",
		}),
	q("laozi_step",
		[3]string{"Lao Tzu", "Лао-цзы", "Lao-Tse"},
		[3]string{
			"A journey of a thousand miles begins with a single step.",
			"Путешествие в тысячу ли начинается с одного шага.",
			"Un viaje de mil millas comienza con un solo paso.",
		}),
	q("aurelius_thoughts",
		[3]string{"Marcus Aurelius", "Марк Аврелий", "Marco Aurelio"},
		[3]string{
			"We become what we think about.",
			"Мы становимся тем, о чём думаем.",
			"Nos convertimos en aquello en lo que pensamos.",
		}),
	q("nietzsche_why",
		[3]string{"Nietzsche", "Ницше", "Nietzsche"},
		[3]string{
			"He who has a why to live can bear almost any how.",
			"Кто имеет зачем жить, сможет вынести почти любое как.",
			"Quien tiene un porqué para vivir puede soportar casi cualquier cómo.",
		}),
	q("camus_summer",
		[3]string{"Camus", "Камю", "Camus"},
		[3]string{
			"In the depth of winter, I finally learned that within me there lay an invincible summer.",
			"В глубине зимы я наконец узнал, что во мне непобедимое лето.",
			"En lo más profundo del invierno aprendí por fin que había en mí un verano invencible.",
		}),
	q("pasternak_essence",
		[3]string{"Pasternak", "Пастернак", "Pasternak"},
		[3]string{
			"In everything I want to reach the very essence.",
			"Во всём хочу дойти до самой сути.",
			"En todo quiero llegar a la esencia misma.",
		}),
	q("akhmatova_kindness",
		[3]string{"Akhmatova", "Ахматова", "Ajmátova"},
		[3]string{
			"The world will be saved not by beauty alone, but by kindness and compassion.",
			"И мир спасёт не красота, а доброта и сострадание.",
			"Al mundo no lo salvará solo la belleza, sino la bondad y la compasión.",
		}),
	q("rumi_seeking",
		[3]string{"Rumi", "Руми", "Rumi"},
		[3]string{
			"What you seek is seeking you.",
			"То, что ты ищешь, тоже ищет тебя.",
			"Lo que buscas también te está buscando.",
		}),
	q("thoreau_simplify",
		[3]string{"Thoreau", "Торо", "Thoreau"},
		[3]string{
			"Simplify, simplify.",
			"Упрощай, упрощай.",
			"Simplifica, simplifica.",
		}),
	q("churchill_success",
		[3]string{"Churchill", "Черчилль", "Churchill"},
		[3]string{
			"Success is going from failure to failure without loss of enthusiasm.",
			"Успех это движение от неудачи к неудаче без потери энтузиазма.",
			"El éxito es ir de fracaso en fracaso sin perder el entusiasmo.",
		}),
	q("buddha_mind",
		[3]string{"Buddha", "Будда", "Buda"},
		[3]string{
			"We are what we think.",
			"Мы то, что мы думаем.",
			"Somos lo que pensamos.",
		}),
	q("jobs_hungry",
		[3]string{"Steve Jobs", "Стив Джобс", "Steve Jobs"},
		[3]string{
			"Stay hungry. Stay foolish.",
			"Оставайтесь голодными. Оставайтесь безрассудными.",
			"Sigue hambriento. Sigue alocado.",
		}),
	q("angelou_feel",
		[3]string{"Maya Angelou", "Майя Энджелоу", "Maya Angelou"},
		[3]string{
			"People will never forget how you made them feel.",
			"Мы не забываем, как люди заставили нас чувствовать.",
			"La gente nunca olvidará cómo la hiciste sentir.",
		}),
}
