package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics agrupa los contadores del registro. Se crea una sola vez (promauto
// registra en el registry global) y se comparte entre servicios.
type Metrics struct {
	UsersRegistered    prometheus.Counter
	AnimalsRegistered  prometheus.Counter
	AnimalsVerified    prometheus.Counter
	LittersRegistered  prometheus.Counter
	CertificatesMinted prometheus.Counter
	TokenTransfers     prometheus.Counter
	BonusesGranted     prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		UsersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "animint_users_registered_total",
			Help: "Total number of users registered",
		}),
		AnimalsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "animint_animals_registered_total",
			Help: "Total number of animals registered",
		}),
		AnimalsVerified: promauto.NewCounter(prometheus.CounterOpts{
			Name: "animint_animals_verified_total",
			Help: "Total number of animal verifications applied",
		}),
		LittersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "animint_litters_registered_total",
			Help: "Total number of litters registered",
		}),
		CertificatesMinted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "animint_certificates_minted_total",
			Help: "Total number of breed certificates minted",
		}),
		TokenTransfers: promauto.NewCounter(prometheus.CounterOpts{
			Name: "animint_token_transfers_total",
			Help: "Total number of successful token transfers",
		}),
		BonusesGranted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "animint_welcome_bonuses_total",
			Help: "Total number of welcome bonuses granted",
		}),
	}
}

// incrementos nil-safe: los services aceptan metrics == nil en tests.

func (m *Metrics) IncUserRegistered() {
	if m != nil {
		m.UsersRegistered.Inc()
	}
}

func (m *Metrics) IncAnimalRegistered() {
	if m != nil {
		m.AnimalsRegistered.Inc()
	}
}

func (m *Metrics) IncAnimalVerified() {
	if m != nil {
		m.AnimalsVerified.Inc()
	}
}

func (m *Metrics) IncLitterRegistered() {
	if m != nil {
		m.LittersRegistered.Inc()
	}
}

func (m *Metrics) IncCertificateMinted() {
	if m != nil {
		m.CertificatesMinted.Inc()
	}
}

func (m *Metrics) IncTokenTransfer() {
	if m != nil {
		m.TokenTransfers.Inc()
	}
}

func (m *Metrics) IncBonusGranted() {
	if m != nil {
		m.BonusesGranted.Inc()
	}
}
