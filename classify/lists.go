package classify

// Built-in term lists. All entries are lowercase and diacritic-exact; they
// are matched by substring against normalized query text, which is what
// makes suffixed Turkish forms ("kargom", "siparişimin") hit.

// defaultAllowTerms mark a query as on-topic for retail support.
var defaultAllowTerms = []string{
	// Turkish
	"kargo", "teslimat", "gönderi", "sipariş", "iade", "geri ödeme",
	"değişim", "fatura", "ödeme", "taksit", "ürün", "stok", "beden",
	"kampanya", "indirim", "kupon", "üyelik", "hesab", "şifre", "garanti",
	"mağaza", "çalışma saat", "müşteri hizmet",
	// English
	"order", "shipping", "delivery", "cargo", "refund", "return", "exchange",
	"invoice", "payment", "installment", "product", "stock", "size",
	"discount", "coupon", "membership", "account", "password", "warranty",
	"store", "working hours", "customer service",
}

// defaultDenyTerms mark a query as off-topic, grouped by the redirect topic
// that should absorb it.
var defaultDenyTerms = map[string][]string{
	TopicPersonalLife: {
		"sevgili", "kız arkadaş", "erkek arkadaş", "aşk", "ilişki", "evlilik",
		"boşan", "yalnızlık", "arkadaşlık",
		"girlfriend", "boyfriend", "marriage", "divorce", "dating", "lonely",
	},
	TopicEntertainment: {
		"film", "dizi", "şarkı", "müzik", "konser", "maç", "galatasaray",
		"fenerbahçe", "oyun öner",
		"movie", "series", "song", "music", "concert", "football match",
	},
	TopicCooking: {
		"yemek tarifi", "tarifi", "nasıl pişir", "mutfak", "kek yap",
		"recipe", "how to cook", "how to bake",
	},
	TopicTravel: {
		"tatil", "otel", "uçak bileti", "vize", "gezilecek",
		"vacation", "hotel", "flight ticket", "visa", "sightseeing",
	},
	TopicHealth: {
		"hastalık", "ilaç", "doktor", "ağrıyor", "belirti", "diyet",
		"disease", "medicine", "doctor", "symptom", "diet plan",
	},
}

// personalIndicators pull the heuristic verdict off-domain.
var personalIndicators = []string{
	"hayatım", "duygular", "mutsuz", "canım sıkkın", "rüya", "burç",
	"psikolog", "tavsiye ver",
	"my life", "my feelings", "depressed", "bored", "horoscope", "dream",
}

// businessIndicators pull the heuristic verdict on-domain.
var businessIndicators = []string{
	"sipariş", "ürün", "fiyat", "hizmet", "mağaza", "satın", "alışveriş",
	"müşteri", "teslim", "paket",
	"order", "product", "price", "service", "store", "purchase", "shopping",
	"customer", "deliver", "package",
}

// interrogatives detected at the start of a query. Turkish question
// particles (mı/mi/mu/mü) attach at the end instead and are handled
// separately.
var interrogatives = []string{
	"ne", "neden", "niye", "nasıl", "nerede", "nereden", "ne zaman",
	"kaç", "hangi", "kim",
	"what", "why", "how", "where", "when", "which", "who",
	"can", "could", "is", "are", "do", "does", "will",
}

// questionParticles are sentence-final Turkish question markers.
var questionParticles = []string{"mı", "mi", "mu", "mü", "mıdır", "midir"}
