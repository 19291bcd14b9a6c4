package configs

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Rakhulsr/go-storefront/app/utils/blobstore"
)

// OpenStore returns the blob store selected by STORAGE_DRIVER.
func OpenStore(ctx context.Context, env ENV, log *logrus.Logger) (blobstore.Store, error) {
	if env.StorageDriver == "s3" {
		store, err := blobstore.NewS3Store(ctx, env.S3Bucket)
		if err != nil {
			return nil, err
		}
		log.WithField("bucket", env.S3Bucket).Info("OpenStore: using s3 blob store")
		return store, nil
	}

	store, err := blobstore.NewLocalStore(env.UploadsDir())
	if err != nil {
		return nil, err
	}
	log.WithField("root", store.Root()).Info("OpenStore: using local blob store")
	return store, nil
}
