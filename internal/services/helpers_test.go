package services

import "recstore/internal/structures"

func storageConfig(dir string) *structures.Config {
	return &structures.Config{
		Storage: structures.Storage{
			DataDir:  dir,
			FileMode: 0644,
		},
	}
}
