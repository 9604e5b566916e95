package product

import "errors"

var (
	// -- Lookup --
	ErrProductNotFound  = errors.New("produk tidak ditemukan")
	ErrCategoryNotFound = errors.New("kategori produk tidak ditemukan")

	// -- Validation --
	ErrProductNameRequired = errors.New("Nama produk harus diisi")
	ErrProductNameTaken    = errors.New("Nama produk sudah ada")
	ErrCategoryRequired    = errors.New("Pilih kategori produk")
	ErrInvalidPrice        = errors.New("Harga produk tidak boleh negatif")
	ErrInvalidStock        = errors.New("Stok produk harus berupa angka positif")
)

const constraintNameUnique = "products_name_lower_key"
