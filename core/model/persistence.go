package model

import (
	"encoding/gob"
	"io"
	"os"

	"github.com/YuminosukeSato/medcost/pkg/errors"
)

// SaveSnapshot はモデルをgob形式でファイルに保存する
//
// パラメータ:
//   - model: 保存するモデル（BaseEstimatorを埋め込んだ構造体）
//   - filename: 保存先のファイルパス
//
// 使用例:
//
//	reg := linear.NewLinearRegression()
//	// ... モデルの学習 ...
//	err := model.SaveSnapshot(reg, "model.gob")
func SaveSnapshot(model interface{}, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.NewIOError("create", filename, err)
	}
	defer file.Close()

	if err := SaveSnapshotToWriter(model, file); err != nil {
		return err
	}
	if err := file.Close(); err != nil {
		return errors.NewIOError("close", filename, err)
	}
	return nil
}

// LoadSnapshot はgob形式のファイルからモデルを読み込む
//
// 使用例:
//
//	reg := linear.NewLinearRegression()
//	err := model.LoadSnapshot(reg, "model.gob")
func LoadSnapshot(model interface{}, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return errors.NewIOError("open", filename, err)
	}
	defer file.Close()

	return LoadSnapshotFromReader(model, file)
}

// SaveSnapshotToWriter はモデルをio.Writerに保存する
func SaveSnapshotToWriter(model interface{}, w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(model); err != nil {
		return errors.Wrap(err, "failed to encode model")
	}
	return nil
}

// LoadSnapshotFromReader はio.Readerからモデルを読み込む
func LoadSnapshotFromReader(model interface{}, r io.Reader) error {
	if err := gob.NewDecoder(r).Decode(model); err != nil {
		return errors.Wrap(err, "failed to decode model")
	}
	return nil
}
