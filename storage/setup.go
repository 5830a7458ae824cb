// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"os"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/logger"
)

// exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	Height         *PoolHandle `prefix:"h"`
	Balances       *PoolHandle `prefix:"b"`
	AssetBalances  *PoolHandle `prefix:"a"`
	AccountAssets  *PoolHandle `prefix:"s"`
	AssetInfo      *PoolHandle `prefix:"i"`
	OrderFills     *PoolHandle `prefix:"o"`
	LeaseState     *PoolHandle `prefix:"l"`
	ActiveLeases   *PoolHandle `prefix:"L"`
	AliasAddress   *PoolHandle `prefix:"A"`
	AddressAliases *PoolHandle `prefix:"r"`
	Transactions   *PoolHandle `prefix:"T"`
	AccountTxCount *PoolHandle `prefix:"c"`
	AccountTxIndex *PoolHandle `prefix:"t"`
	PaymentHashes  *PoolHandle `prefix:"p"`
	LastSnapshot   *PoolHandle `prefix:"H"`
	Snapshots      *PoolHandle `prefix:"S"`
}

// Pool - the set of exported pools
var Pool pools

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

// changing any prefix or record layout requires a new version
const (
	currentDBVersion = 0x101
)

// holds the database handle
var poolData struct {
	sync.RWMutex
	log         *logger.L
	database    *leveldb.DB
	readOnly    bool
	mustReindex bool
	trx         *transaction
	cache       Cache
}

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Initialise - open up the database connection
//
// this must be called before any pool is accessed.  An empty
// database name opens a memory database.  If the result is true the
// database was dropped and the caller must replay all diffs from
// genesis then call ReindexDone.
func Initialise(database string, readOnly bool) (bool, error) {
	poolData.Lock()
	defer poolData.Unlock()

	ok := false
	mustReindex := false

	if nil != poolData.database {
		return mustReindex, fault.ErrAlreadyInitialised
	}

	poolData.log = logger.New("storage")
	if nil == poolData.log {
		return mustReindex, fault.ErrInvalidLoggerChannel
	}

	defer func() {
		if !ok {
			dbClose()
		}
	}()

	db, version, empty, err := getDB(database, readOnly)
	if nil != err {
		return mustReindex, err
	}
	poolData.database = db

	// ensure no database downgrade
	if version > currentDBVersion {
		poolData.log.Criticalf("database version: %d > current version: %d", version, currentDBVersion)
		return mustReindex, fault.ErrSchemaVersionMismatch
	}

	switch {
	case currentDBVersion == version:
		// nothing to do

	case readOnly:
		poolData.log.Criticalf("database version: %d  current: %d  cannot be rebuilt in read only mode", version, currentDBVersion)
		return mustReindex, fault.ErrSchemaVersionMismatch

	case 0 == version && empty:
		// database was empty so tag as current version
		err = putVersion(poolData.database, currentDBVersion)
		if nil != err {
			return mustReindex, err
		}

	default:
		// older version or an interrupted rebuild
		mustReindex = true

		poolData.log.Criticalf("database version: %d < current version: %d", version, currentDBVersion)
		poolData.log.Criticalf("drop database: %q", database)

		poolData.database.Close()
		poolData.database = nil

		// erase the database completely
		if "" != database {
			err = os.RemoveAll(database)
			if nil != err {
				return mustReindex, err
			}
		}

		// generate an empty database
		poolData.database, _, _, err = getDB(database, readOnly)
		if nil != err {
			return mustReindex, err
		}
	}

	err = setupPools()
	if nil != err {
		return mustReindex, err
	}

	poolData.readOnly = readOnly
	poolData.mustReindex = mustReindex
	poolData.cache = newCache()
	poolData.trx = newTransaction()

	poolData.log.Infof("opened: %q  version: %d  read only: %t", database, currentDBVersion, readOnly)

	ok = true // prevent db close
	return mustReindex, nil
}

// scan each field and create its handle from the prefix tag
func setupPools() error {

	// this will be a struct type
	poolType := reflect.TypeOf(Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&Pool).Elem()

	seen := make(map[byte]string)

	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) || versionKey[0] == prefixTag[0] {
			return fmt.Errorf("pool: %s has invalid prefix: %q", fieldInfo.Name, prefixTag)
		}
		prefix := prefixTag[0]
		if name, ok := seen[prefix]; ok {
			return fmt.Errorf("pool: %s has same prefix: %q as: %s", fieldInfo.Name, prefixTag, name)
		}
		seen[prefix] = fieldInfo.Name

		p := &PoolHandle{
			name:   fieldInfo.Name,
			prefix: prefix,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}
	return nil
}

func dbClose() {
	if nil != poolData.database {
		poolData.database.Close()
		poolData.database = nil
	}
	poolData.trx = nil
	poolData.cache = nil
}

// Finalise - close the database connection
func Finalise() {
	poolData.Lock()
	dbClose()
	poolData.Unlock()
}

// MustReindex - true while the database awaits a rebuild from genesis
func MustReindex() bool {
	poolData.RLock()
	defer poolData.RUnlock()
	return poolData.mustReindex
}

// ReindexDone - called at the end of a rebuild to tag the database
func ReindexDone() error {
	poolData.Lock()
	defer poolData.Unlock()

	if nil == poolData.database {
		return fault.ErrNotInitialised
	}
	err := putVersion(poolData.database, currentDBVersion)
	if nil != err {
		return err
	}
	poolData.mustReindex = false
	poolData.log.Info("rebuild complete")
	return nil
}

// return:
//   database handle
//   version number
//   true if database holds no keys at all
func getDB(name string, readOnly bool) (*leveldb.DB, int, bool, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	var db *leveldb.DB
	var err error
	if "" == name {
		db, err = leveldb.Open(ldb_storage.NewMemStorage(), opt)
	} else {
		db, err = leveldb.OpenFile(name, opt)
	}
	if nil != err {
		return nil, 0, false, err
	}

	iter := db.NewIterator(nil, nil)
	empty := !iter.First()
	iter.Release()
	if err := iter.Error(); nil != err {
		db.Close()
		return nil, 0, false, err
	}

	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return db, 0, empty, nil
	} else if nil != err {
		db.Close()
		return nil, 0, false, err
	}

	if 4 != len(versionValue) {
		db.Close()
		return nil, 0, false, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	version := int(binary.BigEndian.Uint32(versionValue))
	return db, version, empty, nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}

// NewDBTransaction - start the single write batch
func NewDBTransaction() (Transaction, error) {
	poolData.RLock()
	trx := poolData.trx
	readOnly := poolData.readOnly
	poolData.RUnlock()

	if nil == trx {
		return nil, fault.ErrNotInitialised
	}
	if readOnly {
		return nil, fault.ErrReadOnlyDatabase
	}
	err := trx.Begin()
	if nil != err {
		return nil, err
	}
	return trx, nil
}
