package linear

import (
	"io"
	"os"

	"github.com/YuminosukeSato/medcost/core/model"
	"github.com/YuminosukeSato/medcost/pkg/errors"
)

const (
	artifactModelType = "LinearRegression"
	artifactVersion   = "1.0.0"
)

// LoadModel はJSON形式の重みファイルから Model を読み込む
//
// 読み込みに失敗した場合は *errors.IOError、内容が不正な場合は
// ModelError / DimensionError / NotFittedError を返す。
//
// 使用例:
//
//	m, err := linear.LoadModel("model.json")
func LoadModel(path string) (*Model, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIOError("open", path, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.NewIOError("read", path, err)
	}
	m, err := decodeModel(data)
	if err != nil {
		return nil, errors.Wrapf(err, "load model %s", path)
	}
	return m, nil
}

// LoadModelFromReader はReaderから Model を読み込む
func LoadModelFromReader(r io.Reader) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewIOError("read", "<reader>", err)
	}
	return decodeModel(data)
}

func decodeModel(data []byte) (*Model, error) {
	var mw model.ModelWeights
	if err := mw.FromJSON(data); err != nil {
		return nil, err
	}
	if mw.ModelType != artifactModelType {
		return nil, errors.NewModelError("linear.LoadModel", "unsupported model_type "+mw.ModelType, nil)
	}
	if err := mw.Validate(); err != nil {
		return nil, err
	}
	return NewModel(mw.Coefficients, mw.Intercept, mw.Features...)
}

// SaveModel は Model をJSON形式でファイルに保存する
// metadata には学習データの件数や評価指標など任意の情報を入れられる
func SaveModel(path string, m *Model, metadata map[string]interface{}) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.NewIOError("create", path, err)
	}
	defer file.Close()

	if err := WriteModel(file, m, metadata); err != nil {
		return err
	}
	if err := file.Close(); err != nil {
		return errors.NewIOError("close", path, err)
	}
	return nil
}

// WriteModel は Model をJSON形式でWriterに書き出す
func WriteModel(w io.Writer, m *Model, metadata map[string]interface{}) error {
	mw := model.ModelWeights{
		ModelType:    artifactModelType,
		Version:      artifactVersion,
		Coefficients: m.Coefficients(),
		Intercept:    m.Intercept(),
		Features:     m.FeatureNames(),
		Metadata:     metadata,
		IsFitted:     true,
	}
	data, err := mw.ToJSON()
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return errors.NewIOError("write", "<writer>", err)
	}
	return nil
}
