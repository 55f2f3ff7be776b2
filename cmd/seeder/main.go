package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/poiesic/answerit/corpus"
	"github.com/poiesic/answerit/corpus/badger"
)

// sampleCorpus is a small retail support corpus used when no source file is
// given, enough to exercise every matching path.
const sampleCorpus = `{
	"responses": {
		"çalışma_saatleri": {
			"keywords": ["çalışma saat", "açılış saati", "kaçta açık", "working hours"],
			"message": "Mağazalarımız hafta içi 09:00-21:00, hafta sonu 10:00-20:00 arasında hizmet vermektedir."
		},
		"kargo_takip": {
			"keywords": ["kargo takip", "kargom nerede", "gönderi durumu", "track my order"],
			"message": "Kargonuzu 'Siparişlerim' sayfasından veya kargo firmasının sitesine sipariş numaranızı girerek takip edebilirsiniz."
		},
		"iade_kosullari": {
			"keywords": ["iade", "geri ödeme", "ürün iadesi", "return policy", "refund"],
			"message": "Ürünlerinizi teslim tarihinden itibaren 14 gün içinde, faturanızla birlikte ücretsiz iade edebilirsiniz."
		},
		"odeme_secenekleri": {
			"keywords": ["ödeme", "taksit", "kredi kartı", "havale", "payment options"],
			"message": "Kredi kartı, banka kartı, havale ve kapıda ödeme seçeneklerimiz mevcuttur. Kredi kartına 9 taksite kadar imkan sunuyoruz."
		},
		"uyelik_islemleri": {
			"keywords": ["üyelik", "hesab", "şifre sıfırla", "account", "password reset"],
			"message": "Üyelik işlemlerinizi 'Hesabım' sayfasından yönetebilir, şifrenizi giriş ekranındaki 'Şifremi Unuttum' bağlantısından sıfırlayabilirsiniz."
		},
		"default_response": "Üzgünüm, '{user_input}' hakkında hazır bir yanıtım yok. Müşteri hizmetlerimize 0850 000 00 00 numarasından ulaşabilirsiniz."
	},
	"categories": {
		"vip_hizmetler": {
			"weight": 1.2,
			"terms": ["vip", "öncelikli destek", "özel müşteri", "premium"]
		}
	},
	"redirects": {
		"cooking": "Yemek tarifleri konusunda yardımcı olamıyorum, ama siparişleriniz ve ürünlerimizle ilgili sorularınızı yanıtlayabilirim.",
		"general": "Bu konu uzmanlık alanımın dışında. Sipariş, kargo, iade ve ürünlerimizle ilgili her konuda yardımcı olabilirim."
	}
}`

var (
	srcFileName = flag.String("src", "", "corpus file to seed from (JSON or YAML)")
	dbPath      = flag.String("db", "./corpus_db", "BadgerDB database directory")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// loadCorpus resolves the source file, or the embedded sample when no file
// is given.
func loadCorpus() (*corpus.Corpus, error) {
	if *srcFileName != "" {
		return corpus.LoadFile(*srcFileName)
	}
	doc, err := corpus.Parse([]byte(sampleCorpus), ".json")
	if err != nil {
		return nil, err
	}
	return corpus.Resolve(doc)
}

func main() {
	c, err := loadCorpus()
	if err != nil {
		panic(err)
	}

	backend, err := badger.OpenBackend(*dbPath, false)
	if err != nil {
		panic(err)
	}
	defer backend.Close()

	store, err := badger.NewStore(backend)
	if err != nil {
		panic(err)
	}

	if err := store.Put(context.Background(), c); err != nil {
		panic(err)
	}

	source := "embedded sample"
	if *srcFileName != "" {
		source = filepath.Clean(*srcFileName)
	}
	slog.Info("corpus seeded",
		"source", source,
		"db", *dbPath,
		"answers", c.Len(),
		"domains", len(c.Domains()),
		"hash", uint64(c.Hash()))
}
