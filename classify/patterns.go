package classify

import "regexp"

// Compiled phrasing patterns for stage two. Off-domain patterns carry the
// redirect topic that should absorb the query; in-domain patterns carry the
// category tag they evidence. Patterns run against normalized text, so
// everything here is lowercase.

type topicPattern struct {
	topic string
	re    *regexp.Regexp
}

var offDomainPatterns = []topicPattern{
	{TopicCooking, regexp.MustCompile(`nasıl (pişir|yapılır)|yemek tarif|tarifi (nedir|ver|var)|kaç dakika pişer|how (do i|to) (cook|bake|fry)|recipe for`)},
	{TopicEntertainment, regexp.MustCompile(`(film|dizi|şarkı|müzik|oyun) öner|hangi (filmi|diziyi) izle|maç (kaç kaç|ne zaman|skoru)|recommend (a|me a|some) (movie|song|series|game)|what should i watch`)},
	{TopicPersonalLife, regexp.MustCompile(`sevgilimle|kız arkadaşımla|erkek arkadaşımla|aşk acısı|nasıl (barışırım|flört ederim)|(relationship|dating) advice|my (girlfriend|boyfriend) and i`)},
	{TopicTravel, regexp.MustCompile(`(tatil|otel|tur) öner|nereye gid(ilir|eyim)|uçak bileti (ne kadar|bul)|vize (nasıl|gerek)|where should i (go|travel)|vacation (ideas|spots)|cheap flights`)},
	{TopicHealth, regexp.MustCompile(`neden ağrıyor|hangi ilacı|belirtileri ne(ler)?dir|diyet listesi|hastalığ[ıi]|what medicine should|symptoms of|diet plan for`)},
}

var inDomainPatterns = []topicPattern{
	{"pricing", regexp.MustCompile(`ne kadar( tutar)?|kaç (tl|lira|para)|fiyatı ne(dir)?|ücret(i|li) mi|how much (is|does|will)|what('s| is) the (price|cost)`)},
	{"working_hours", regexp.MustCompile(`çalışma saat|kaçta (açılıyor|kapanıyor)|saat kaça kadar|açık mı(sınız)?|working hours|what time (do you|are you) (open|close)|are you open`)},
	{"refund", regexp.MustCompile(`iade (etmek|edebilir|koşulları|süresi)|geri ödeme|para(mı)? iadesi|ürünü geri|how (do|can) i return|refund (policy|status)|i want (a refund|to return)`)},
	{"shipping", regexp.MustCompile(`kargom? ne(rede| zaman)|siparişim ne(rede| zaman)|teslimat (süresi|ne zaman|adresi)|gönderi takip|where is my (order|package|cargo)|track my (order|shipment)|when will .* arrive`)},
	{"account", regexp.MustCompile(`(hesab|şifre|üyeli)[a-zğışöüç]*[ıi]?(mı|mi)? (sil|değiştir|unuttum|oluştur|açamıyorum)|üye ol(mak|amıyorum)|(reset|change|forgot) (my )?password|(delete|close) my account|can('t| not) log ?in`)},
	{"how_to", regexp.MustCompile(`nasıl (sipariş|iade|üye|ödeme|satın)|how (do|can) i (order|pay|register|buy|purchase)`)},
	{"support", regexp.MustCompile(`müşteri (hizmetleri|temsilcisi)|canlı destek|temsilciye bağla|şikayet(im| etmek)|customer (service|support)|(speak|talk) to (an agent|a human|someone)|file a complaint`)},
}
