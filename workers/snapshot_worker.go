package workers

import (
	"context"
	"fmt"
	"log"
	"time"

	"brain-play-system/services"
	"brain-play-system/utils"
)

// PollSnapshots periodically copies every stored profile blob to R2 so a lost
// database doesn't mean lost progress. Upload failures are logged and retried
// on the next cycle; the profiles table stays the source of truth.
func PollSnapshots(ctx context.Context, blobs services.BlobStore, pollInterval time.Duration) {
	log.Println("Starting profile snapshot backups...")

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Profile snapshot backups stopped.")
			return
		case <-ticker.C:
			ids, err := blobs.Keys()
			if err != nil {
				log.Printf("❌ Snapshot backup: failed to list profiles: %v", err)
				continue
			}

			var uploaded, failed int
			day := time.Now().UTC().Format("2006-01-02")
			for _, userID := range ids {
				data, found, err := blobs.Get(userID)
				if err != nil || !found {
					failed++
					continue
				}
				key := fmt.Sprintf("profiles/%s/%s.json", userID, day)
				if err := utils.UploadBlobToR2(key, []byte(data), "application/json"); err != nil {
					failed++
					log.Printf("⚠️ Snapshot upload failed for %s: %v", userID, err)
					continue
				}
				uploaded++
			}
			log.Printf("📦 Snapshot backup: %d uploaded, %d failed", uploaded, failed)
		}
	}
}
