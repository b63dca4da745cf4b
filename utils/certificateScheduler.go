package utils

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// CertificateReconciler is implemented by the certificate service. The
// scheduler only fires the passes; the service owns the logic and logging.
type CertificateReconciler interface {
	RunSweep()
	RunURLCheck()
}

// InitializeCertificateScheduler sets up the certificate reconciliation jobs
func InitializeCertificateScheduler(reconciler CertificateReconciler, sweepMinutes int) {
	log.Println("[CERTIFICATE-SCHEDULER] Initializing certificate scheduler...")

	if sweepMinutes < 1 {
		sweepMinutes = 10
	}

	c := cron.New()

	// Reconcile stale pending certificates
	c.AddFunc(fmt.Sprintf("*/%d * * * *", sweepMinutes), func() {
		log.Println("[CERTIFICATE-SCHEDULER] Running pending certificate sweep...")
		reconciler.RunSweep()
	})

	// Verify recently issued certificate URLs daily at 2:30 AM
	c.AddFunc("30 2 * * *", func() {
		log.Println("[CERTIFICATE-SCHEDULER] Running issued URL verification...")
		reconciler.RunURLCheck()
	})

	c.Start()
	log.Printf("[CERTIFICATE-SCHEDULER] Certificate scheduler started - sweep every %d minutes", sweepMinutes)
}
