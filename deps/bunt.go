package deps

import (
	"github.com/tidwall/buntdb"
)

const cartsIndex = "carts"

func IgniteBuntDB(container Deps) (Deps, error) {
	db, err := buntdb.Open(container.Config().UString("bunt.path", "storefront.db"))
	if err != nil {
		return container, err
	}

	if err := db.CreateIndex(cartsIndex, container.Slot("*"), buntdb.IndexString); err != nil {
		db.Close()
		return container, err
	}
	if n, err := storedCarts(db); err == nil {
		log.Infof("bunt: %d visitor carts stored", n)
	}

	container.BuntProvider = db
	container.onClose(db.Close)
	return container, nil
}

// storedCarts counts the visitor slots kept in db.
func storedCarts(db *buntdb.DB) (n int, err error) {
	err = db.View(func(tx *buntdb.Tx) error {
		return tx.Ascend(cartsIndex, func(key, value string) bool {
			n++
			return true
		})
	})
	return
}
