package config_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"onboardly.app/portal/core/config"
)

var _ = Describe("Load", func() {
	setenv := func(pairs map[string]string) {
		for k, v := range pairs {
			GinkgoT().Setenv(k, v)
		}
	}

	BeforeEach(func() {
		setenv(map[string]string{
			"PORTAL_ENV":       "test",
			"WORKOS_API_KEY":   "sk_test",
			"WORKOS_CLIENT_ID": "client_test",
			"META_APP_ID":      "meta-app",
			"META_APP_SECRET":  "meta-secret",
		})
	})

	It("applies defaults", func() {
		cfg, err := config.Load()
		Expect(err).NotTo(HaveOccurred())

		Expect(cfg.Port).To(Equal("8080"))
		Expect(cfg.LinkExpiry).To(Equal(7 * 24 * time.Hour))
		Expect(cfg.Redis.StateTTL).To(Equal(10 * time.Minute))
		Expect(cfg.Platforms.Meta.GraphVersion).To(Equal("v19.0"))
		Expect(cfg.Platforms.Discovery.RequestTimeout).To(Equal(15 * time.Second))
		Expect(cfg.Platforms.Discovery.PassBudget).To(BeZero())
		Expect(cfg.OTel.Enabled()).To(BeFalse())
		Expect(cfg.OTel.Environment).To(Equal("test"))
	})

	It("trims trailing slashes from public urls", func() {
		setenv(map[string]string{
			"API_URL":       "https://api.onboardly.test/",
			"DASHBOARD_URL": "https://app.onboardly.test/",
		})

		cfg, err := config.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.APIURL).To(Equal("https://api.onboardly.test"))
		Expect(cfg.DashboardURL).To(Equal("https://app.onboardly.test"))
	})

	It("parses scope lists", func() {
		setenv(map[string]string{"GOOGLE_ADMIN_SCOPES": "openid, email,,profile"})

		cfg, err := config.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Platforms.Google.AdminScopes).To(Equal([]string{"openid", "email", "profile"}))
	})

	It("reads the per-call timeout and the pass budget separately", func() {
		setenv(map[string]string{
			"DISCOVERY_REQUEST_TIMEOUT": "5s",
			"DISCOVERY_PASS_BUDGET":     "2m",
		})

		cfg, err := config.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Platforms.Discovery.RequestTimeout).To(Equal(5 * time.Second))
		Expect(cfg.Platforms.Discovery.PassBudget).To(Equal(2 * time.Minute))
	})

	It("falls back to DISCOVERY_TIMEOUT for the per-call timeout", func() {
		setenv(map[string]string{"DISCOVERY_TIMEOUT": "9s"})

		cfg, err := config.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Platforms.Discovery.RequestTimeout).To(Equal(9 * time.Second))
		Expect(cfg.Platforms.Discovery.PassBudget).To(BeZero())
	})

	It("only enables platforms with both credentials", func() {
		setenv(map[string]string{"TIKTOK_CLIENT_KEY": "key-only"})

		cfg, err := config.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Platforms.Meta.Enabled()).To(BeTrue())
		Expect(cfg.Platforms.TikTok.Enabled()).To(BeFalse())
	})

	It("requires WorkOS credentials", func() {
		setenv(map[string]string{"WORKOS_API_KEY": ""})

		_, err := config.Load()
		Expect(err).To(MatchError(ContainSubstring("WORKOS_API_KEY")))
	})

	It("requires at least one platform", func() {
		setenv(map[string]string{"META_APP_ID": ""})

		_, err := config.Load()
		Expect(err).To(MatchError(ContainSubstring("at least one platform")))
	})

	It("refuses debug assets in production", func() {
		setenv(map[string]string{
			"PORTAL_ENV":             "production",
			"DISCOVERY_DEBUG_ASSETS": "true",
		})

		_, err := config.Load()
		Expect(err).To(MatchError(ContainSubstring("DISCOVERY_DEBUG_ASSETS")))
	})
})
