package filestore

import "fmt"

// FakeImageStore is an in-memory ImageStore for tests. Keys are handed out
// sequentially and deletes are recorded for assertions.
type FakeImageStore struct {
	Stored  []string
	Deleted []string
}

func (f *FakeImageStore) StoreEncoded(dataUri string) (key string, err error) {
	key = fmt.Sprintf("fake-key-%d", len(f.Stored))
	f.Stored = append(f.Stored, dataUri)
	return key, nil
}

func (f *FakeImageStore) Delete(key string) error {
	f.Deleted = append(f.Deleted, key)
	return nil
}

func (f *FakeImageStore) GetUrlFromKey(key string) string {
	return "https://images.test/" + key
}

func (f *FakeImageStore) CleanUp() {}
